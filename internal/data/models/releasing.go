package models

// TagList summarizes the repository's git tags.
type TagList struct {
	Count int
}

// ReleaseList summarizes the repository's GitHub releases.
type ReleaseList struct {
	Count int
}
