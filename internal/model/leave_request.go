package model

import "time"

// Leave request statuses. A request starts out pending and is moved to
// approved or rejected exactly once by an administrator.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave types
const (
	LeaveTypeSick      = "sick"
	LeaveTypeVacation  = "vacation"
	LeaveTypePersonal  = "personal"
	LeaveTypeEmergency = "emergency"
)

// LeaveRequest represents a leave application stored in the database.
// User is a read-only snapshot of the owner loaded on reads for display,
// not a stored back-reference.
type LeaveRequest struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	User          *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	LeaveType     string    `json:"leave_type" gorm:"type:varchar(20);not null"`
	StartDate     time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate       time.Time `json:"end_date" gorm:"type:date;not null"`
	DaysRequested int       `json:"days_requested" gorm:"not null"`
	Reason        string    `json:"reason" gorm:"type:text;not null"`
	Status        string    `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	AdminComment  string    `json:"admin_comment,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidLeaveType reports whether the leave type is one of the supported types
func ValidLeaveType(leaveType string) bool {
	switch leaveType {
	case LeaveTypeSick, LeaveTypeVacation, LeaveTypePersonal, LeaveTypeEmergency:
		return true
	}
	return false
}

// ValidDecision reports whether the status is a valid transition target
func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// DaysRequested computes the inclusive calendar-day count between two dates.
// Time-of-day components are truncated before the subtraction, so a partial
// trailing day never rounds the count up.
func DaysRequested(start, end time.Time) int {
	start = truncateToDate(start)
	end = truncateToDate(end)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
