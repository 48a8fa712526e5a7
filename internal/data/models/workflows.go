package models

import "strings"

// WorkflowTexts holds the text of every GitHub Actions workflow file in a
// repository, lowercased once at construction so keyword checks are
// case-insensitive substring containment.
type WorkflowTexts struct {
	texts []string
}

func NewWorkflowTexts(raw []string) *WorkflowTexts {
	texts := make([]string, 0, len(raw))
	for _, t := range raw {
		texts = append(texts, strings.ToLower(t))
	}
	return &WorkflowTexts{texts: texts}
}

// Len returns the number of workflow files captured.
func (w *WorkflowTexts) Len() int {
	if w == nil {
		return 0
	}
	return len(w.texts)
}

// ContainsAny reports whether any workflow text contains any of the given
// keyword hints. Hints are expected to be lowercase.
func (w *WorkflowTexts) ContainsAny(hints []string) bool {
	if w == nil {
		return false
	}
	for _, text := range w.texts {
		for _, h := range hints {
			if strings.Contains(text, h) {
				return true
			}
		}
	}
	return false
}
