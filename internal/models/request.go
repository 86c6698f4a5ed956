package models

// RequestStatus enumerates the workflow states of a compensation request.
type RequestStatus string

const (
	StatusDraft            RequestStatus = "DRAFT"
	StatusSubmitted        RequestStatus = "SUBMITTED"
	StatusReturned         RequestStatus = "RETURNED"
	StatusPendingReview    RequestStatus = "PENDING_REVIEW"
	StatusDuplicate        RequestStatus = "DUPLICATE"
	StatusVerified         RequestStatus = "VERIFIED"
	StatusPendingCommittee RequestStatus = "PENDING_COMMITTEE"
	StatusApproved         RequestStatus = "APPROVED"
	StatusRejected         RequestStatus = "REJECTED"
	StatusAppealPending    RequestStatus = "APPEAL_PENDING"
)

// AppealStatus tracks the resolution of an appeal sub-record.
type AppealStatus string

const (
	AppealAwaiting AppealStatus = "AWAITING"
	AppealApproved AppealStatus = "APPROVED"
	AppealRejected AppealStatus = "REJECTED"
)

// TimelineStatus records whether a request was filed inside the window.
type TimelineStatus string

const (
	TimelineOnTime TimelineStatus = "ontime"
	TimelineLate   TimelineStatus = "late"
)

// ApplicantInfo is a snapshot of the applicant's academic profile captured
// at submission time.
type ApplicantInfo struct {
	TitleName        string `json:"title_name"`
	AcademicPosition string `json:"academic_position"`
	PositionDate     string `json:"position_date"`
	PositionNumber   string `json:"position_number"`
	Department       string `json:"department"`
	Faculty          string `json:"faculty"`
}

// Appeal is the embedded appeal sub-record. At most one per request; a
// re-appeal overwrites the previous one.
type Appeal struct {
	Reason   string       `json:"reason"`
	Evidence string       `json:"evidence"`
	Date     string       `json:"date"`
	Status   AppealStatus `json:"status"`
}

// Request is a compensation request record. Records are never deleted; all
// mutations flow through the workflow service.
type Request struct {
	ID                string         `json:"id"`
	Applicant         string         `json:"applicant"`
	ApplicantName     string         `json:"applicant_name"`
	ApplicantInfo     ApplicantInfo  `json:"applicant_info"`
	FiscalYear        string         `json:"fiscal_year"`
	Works             []WorkItem     `json:"works"`
	Date              string         `json:"date"`
	Status            RequestStatus  `json:"status"`
	Score             float64        `json:"score"`
	TotalCompensation float64        `json:"total_compensation"`
	Comment           string         `json:"comment"`
	TimelineStatus    TimelineStatus `json:"timeline_status"`
	Certify           bool           `json:"certify"`
	RejectionDate     string         `json:"rejection_date,omitempty"`
	Appeal            *Appeal        `json:"appeal,omitempty"`
	ApprovedAmount    string         `json:"approved_amount,omitempty"`
}
