package models

// Timeline is the singleton submission-window configuration for a fiscal
// year. Dates are stored as dd/mm/yyyy strings for interop with existing
// data files.
type Timeline struct {
	FiscalYear string `json:"fiscal_year"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}
