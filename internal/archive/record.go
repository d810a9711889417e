package archive

// EventRecord is one accepted webhook event.
type EventRecord struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	PrimaryToken  string         `json:"primary_token,omitempty"`
	Priority      string         `json:"priority"`
	SubmittedAtMs int64          `json:"submitted_at_ms"`
	Payload       map[string]any `json:"payload"`
}

// AnalysisRecord is the outcome of one analyzer call.
type AnalysisRecord struct {
	ID         string `json:"id"`
	Token      string `json:"token"`
	Source     string `json:"source"`
	Passed     bool   `json:"security_check_passed"`
	StoredInDB bool   `json:"stored_in_db"`
	Error      string `json:"error,omitempty"`
	AtMs       int64  `json:"at_ms"`
}
