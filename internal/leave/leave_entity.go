package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType string

const (
	TypeSick      LeaveType = "Sick Leave"
	TypeVacation  LeaveType = "Vacation Leave"
	TypePersonal  LeaveType = "Personal Leave"
	TypeMaternity LeaveType = "Maternity Leave"
	TypePaternity LeaveType = "Paternity Leave"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Decided reports whether s is one of the terminal statuses.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

const DateLayout = "2006-01-02"

type LeaveRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   string    `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee_status"`
	EmployeeName string    `gorm:"type:varchar(150)"`
	LeaveType    LeaveType `gorm:"type:varchar(30);not null"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	LeaveDays    int       `gorm:"not null"`
	Reason       string    `gorm:"type:text"`
	Status       Status    `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee_status"`
	CreatedAt    time.Time `gorm:"index:idx_leave_requests_created_at"`
	UpdatedAt    time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Expired is a view over Approved requests whose last day is before today.
func (l LeaveRequest) Expired(today time.Time) bool {
	if l.Status != StatusApproved {
		return false
	}
	y, m, d := today.Date()
	return l.EndDate.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
