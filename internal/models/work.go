package models

// WorkItem is one scholarly output submitted as part of a request. Raw type
// and detail tokens come from the submission form; the calculated fields are
// filled in by the scoring engine and re-computed on every save.
type WorkItem struct {
	Type    string            `json:"type"`
	Title   string            `json:"title,omitempty"`
	Details map[string]string `json:"details"`

	CalculatedScore  float64 `json:"calculated_score"`
	CalculatedWeight float64 `json:"calculated_weight"`
	NetScore         float64 `json:"net_score"`
	CalcError        bool    `json:"calc_error"`
	CalcMessage      string  `json:"calc_message,omitempty"`
}
