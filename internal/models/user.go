package models

// UserRole represents the workflow roles recognised by the system.
type UserRole string

const (
	RoleApplicant      UserRole = "APPLICANT"
	RoleAdministration UserRole = "ADMINISTRATION"
	RoleResearch       UserRole = "RESEARCH"
	RoleCommittee      UserRole = "COMMITTEE"
	RoleAdmin          UserRole = "ADMIN"
)

// User represents an account in the users collection. Academic fields are
// snapshotted onto a request at submission time and are never live-linked.
type User struct {
	Username         string   `json:"username"`
	PasswordHash     string   `json:"-"`
	FullName         string   `json:"full_name"`
	Role             UserRole `json:"role"`
	TitleName        string   `json:"title_name,omitempty"`
	AcademicPosition string   `json:"academic_position,omitempty"`
	PositionDate     string   `json:"position_date,omitempty"`
	PositionNumber   string   `json:"position_number,omitempty"`
	Department       string   `json:"department,omitempty"`
	Faculty          string   `json:"faculty,omitempty"`
}

// UserRecord is the persisted shape of a User including the password hash.
type UserRecord struct {
	Username         string   `json:"username"`
	PasswordHash     string   `json:"password_hash"`
	FullName         string   `json:"full_name"`
	Role             UserRole `json:"role"`
	TitleName        string   `json:"title_name,omitempty"`
	AcademicPosition string   `json:"academic_position,omitempty"`
	PositionDate     string   `json:"position_date,omitempty"`
	PositionNumber   string   `json:"position_number,omitempty"`
	Department       string   `json:"department,omitempty"`
	Faculty          string   `json:"faculty,omitempty"`
}

// Public strips credential material for API responses.
func (r UserRecord) Public() User {
	return User{
		Username:         r.Username,
		FullName:         r.FullName,
		Role:             r.Role,
		TitleName:        r.TitleName,
		AcademicPosition: r.AcademicPosition,
		PositionDate:     r.PositionDate,
		PositionNumber:   r.PositionNumber,
		Department:       r.Department,
		Faculty:          r.Faculty,
	}
}
