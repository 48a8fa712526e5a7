package models

// ReadmeContent is the README body fetched from the default branch.
// Found is false when no README could be resolved.
type ReadmeContent struct {
	Found bool
	Path  string
	Body  string
}
