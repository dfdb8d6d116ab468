package employee

import (
	"time"

	"go-attendance/internal/domain"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = domain.RoleAdmin
	RoleEmployee = domain.RoleEmployee
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumericID      int       `gorm:"column:numeric_id;not null;index:idx_employees_numeric_id"`
	FullName       string    `gorm:"type:varchar(150);not null"`
	Email          string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	Role           string    `gorm:"type:varchar(20);not null"`
	DepartmentName string    `gorm:"type:varchar(100)"`

	NotifyLeaveStatus         bool `gorm:"column:notify_leave_status;not null"`
	NotifySystemAnnouncements bool `gorm:"column:notify_system_announcements;not null"`
	NotifyAttendanceReminders bool `gorm:"column:notify_attendance_reminders;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
