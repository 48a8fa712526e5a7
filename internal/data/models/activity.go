package models

import "time"

// CommitActivity is the commit history over the trailing assessment window.
// Authors holds one resolved identity per commit: the GitHub login when the
// commit is attached to an account, otherwise the git author name.
type CommitActivity struct {
	WindowDays int
	Authors    []string
}

// DistinctAuthorCount returns the number of distinct author identities.
func (c *CommitActivity) DistinctAuthorCount() int {
	if c == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(c.Authors))
	for _, a := range c.Authors {
		if a == "" {
			continue
		}
		seen[a] = struct{}{}
	}
	return len(seen)
}

// PushActivity is the most recent push timestamp. Found is false when the
// repository reports no pushed-at value and has no commits to fall back to.
type PushActivity struct {
	Found    bool
	LastPush time.Time
}
