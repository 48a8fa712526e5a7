package models

// CommunityFiles captures the community-profile file presence flags reported
// by the GitHub community/profile endpoint.
//
// A repository without a community profile (API 404) is represented by the
// zero value with Found=false; all flags then read as absent.
type CommunityFiles struct {
	Found bool

	Readme              bool
	License             bool
	Contributing        bool
	SecurityPolicy      bool
	CodeOfConduct       bool
	IssueTemplate       bool
	PullRequestTemplate bool
}
