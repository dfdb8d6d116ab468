package ledger

import (
	"time"

	"go-attendance/internal/leave"

	"github.com/google/uuid"
)

// LeaveDaysTaken is one approved leave request's consumed days. There is at
// most one row per leave request.
type LeaveDaysTaken struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     string          `gorm:"type:varchar(20);not null;index:idx_leave_days_taken_employee"`
	EmployeeName   string          `gorm:"type:varchar(150)"`
	LeaveRequestID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_days_taken_request"`
	LeaveDays      int             `gorm:"not null"`
	LeaveType      leave.LeaveType `gorm:"type:varchar(30);not null"`
	StartDate      time.Time       `gorm:"type:date;not null"`
	EndDate        time.Time       `gorm:"type:date;not null"`
	ApprovedAt     time.Time       `gorm:"not null"`
}

func (LeaveDaysTaken) TableName() string {
	return "leave_days_taken"
}
