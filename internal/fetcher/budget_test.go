package fetcher

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func budgetAt(remaining int, now time.Time) *RequestBudget {
	b := NewRequestBudget()
	b.remaining = remaining
	b.reset = now.Add(time.Hour)
	b.now = func() time.Time { return now }
	return b
}

func TestAcquireDecrementsRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := budgetAt(10, now)

	if err := b.Acquire(context.Background(), 3); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := b.Remaining(); got != 7 {
		t.Errorf("Remaining() = %d, want 7", got)
	}
}

func TestAcquireRejectsBadArgs(t *testing.T) {
	b := NewRequestBudget()
	if err := b.Acquire(context.Background(), 0); err == nil {
		t.Error("Acquire(0) should fail")
	}
	if err := b.Acquire(nil, 1); err == nil {
		t.Error("Acquire with nil context should fail")
	}
}

func TestAcquireBlocksUntilCanceled(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := budgetAt(0, now)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := b.Acquire(ctx, 1)
	if err == nil {
		t.Fatal("Acquire with exhausted budget should block until the context gives up")
	}
	if err != context.DeadlineExceeded {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestUpdateFromResponseHeaders(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := budgetAt(100, now)

	reset := now.Add(30 * time.Minute)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-RateLimit-Remaining", "42")
	resp.Header.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

	b.UpdateFromResponse(resp)

	if got := b.Remaining(); got != 42 {
		t.Errorf("Remaining() = %d, want 42", got)
	}
	b.mu.Lock()
	gotReset := b.reset
	b.mu.Unlock()
	if !gotReset.Equal(reset) {
		t.Errorf("reset = %v, want %v", gotReset, reset)
	}
}

func TestUpdateFromResponseRetryAfterCooldown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := budgetAt(100, now)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "60")
	b.UpdateFromResponse(resp)

	b.mu.Lock()
	cooldown := b.cooldown
	b.mu.Unlock()

	want := now.Add(60 * time.Second)
	if !cooldown.Equal(want) {
		t.Errorf("cooldown = %v, want %v", cooldown, want)
	}

	// A shorter Retry-After must not move the cooldown backwards.
	resp2 := &http.Response{Header: http.Header{}}
	resp2.Header.Set("Retry-After", "10")
	b.UpdateFromResponse(resp2)

	b.mu.Lock()
	after := b.cooldown
	b.mu.Unlock()
	if !after.Equal(want) {
		t.Errorf("cooldown moved to %v after shorter Retry-After, want %v", after, want)
	}
}

func TestUpdateFromResponseIgnoresGarbage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := budgetAt(100, now)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-RateLimit-Remaining", "not-a-number")
	resp.Header.Set("Retry-After", "-5")
	b.UpdateFromResponse(resp)

	if got := b.Remaining(); got != 100 {
		t.Errorf("Remaining() = %d, want 100 (unchanged)", got)
	}
}
