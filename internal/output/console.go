package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"repovitals/internal/scoring"

	"github.com/fatih/color"
)

type ConsoleSink struct {
	writer  io.Writer
	format  string // "table", "json", "ndjson"
	mu      sync.Mutex
	records []Record // For table and JSON array output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "table"
	}
	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	switch s.format {
	case "table", "json":
		r, ok := v.(Record)
		if !ok {
			// Ignore lifecycle events in aggregate modes.
			return nil
		}
		s.records = append(s.records, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Record:
			e := eventFromRecord(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.records); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	case "table":
		if err := s.renderTable(); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	case "ndjson":
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

var tableHeader = []string{"Repository", "Docs", "Infra", "Health", "Total", "Maturity", "Health Label"}

func (s *ConsoleSink) renderTable() error {
	rows := make([][]string, 0, len(s.records))
	for _, r := range s.records {
		rows = append(rows, []string{
			r.Repository,
			ScoreCell(r.Documentation.Score, r.Documentation.Max),
			ScoreCell(r.Infrastructure.Score, r.Infrastructure.Max),
			ScoreCell(r.Health.Score, r.Health.Max),
			ScoreCell(r.Total, r.MaxTotal),
			r.Maturity,
			r.Health.Label,
		})
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string, colorize bool) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-len(cell))
			if colorize {
				switch i {
				case 5:
					padded = maturityColor(cell).Sprint(padded)
				case 6:
					padded = healthColor(cell).Sprint(padded)
				}
			}
			parts[i] = padded
		}
		_, err := fmt.Fprintln(s.writer, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := printRow(tableHeader, false); err != nil {
		return err
	}
	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}
	if err := printRow(separator, false); err != nil {
		return err
	}
	for _, row := range rows {
		if err := printRow(row, true); err != nil {
			return err
		}
	}

	for _, r := range s.records {
		if len(r.Infrastructure.Breakdown) == 0 && len(r.Health.Breakdown) == 0 {
			continue
		}
		if err := s.renderBreakdown(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) renderBreakdown(r Record) error {
	bold := color.New(color.Bold)
	if _, err := fmt.Fprintf(s.writer, "\n%s\n", bold.Sprint(r.Repository)); err != nil {
		return err
	}
	sections := []struct {
		title  string
		scores []scoring.SubScore
	}{
		{"Infrastructure", r.Infrastructure.Breakdown},
		{"Health", r.Health.Breakdown},
	}
	if len(r.Documentation.Details) > 0 {
		if _, err := fmt.Fprintf(s.writer, "  Documentation (%s)\n", ScoreCell(r.Documentation.Score, r.Documentation.Max)); err != nil {
			return err
		}
		if err := s.renderDetails(r.Documentation.Details); err != nil {
			return err
		}
	}
	for _, sec := range sections {
		if len(sec.scores) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(s.writer, "  %s\n", sec.title); err != nil {
			return err
		}
		for _, sub := range sec.scores {
			if _, err := fmt.Fprintf(s.writer, "    %-28s %s\n", sub.Name, ScoreCell(sub.Points, sub.MaxPoints)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ConsoleSink) renderDetails(details map[string]any) error {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(s.writer, "    %s: %v\n", k, details[k]); err != nil {
			return err
		}
	}
	return nil
}

func maturityColor(tier string) *color.Color {
	switch tier {
	case scoring.TierMature:
		return color.New(color.FgGreen)
	case scoring.TierGrowth:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func healthColor(label string) *color.Color {
	switch label {
	case scoring.HealthHealthy:
		return color.New(color.FgGreen)
	case scoring.HealthModerate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
