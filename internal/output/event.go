package output

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - repo.started
// - repo.assessed
// - repo.failed
// - run.finished
//
// JSON mode remains an aggregate of Record values.
type Event struct {
	Type string `json:"type"`
	Repo string `json:"repo,omitempty"`
	*Record
	Repos   int    `json:"repos,omitempty"`
	Scorers int    `json:"scorers,omitempty"`
	Failed  int    `json:"failed,omitempty"`
	Error   string `json:"error,omitempty"`
}

func eventFromRecord(r Record) Event {
	return Event{Type: "repo.assessed", Repo: r.Repository, Record: &r}
}
