package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeLeaveApproved          Type = "leave_approved"
	TypeLeaveRejected          Type = "leave_rejected"
	TypeVacationAnnouncement   Type = "vacation_announcement"
	TypeHolidayUpdated         Type = "holiday_updated"
	TypeHolidayDeleted         Type = "holiday_deleted"
	TypeHolidayExpired         Type = "holiday_expired"
	TypeWorkingHoursChanged    Type = "working_hours_changed"
	TypeAttendanceRulesChanged Type = "attendance_rules_changed"
	TypeAttendanceReminder     Type = "attendance_reminder"
)

// Category is the preference flag on the employee that gates a Type.
type Category int

const (
	CategoryLeaveStatus Category = iota + 1
	CategorySystemAnnouncements
	CategoryAttendanceReminders
)

var typeCategories = map[Type]Category{
	TypeLeaveApproved:          CategoryLeaveStatus,
	TypeLeaveRejected:          CategoryLeaveStatus,
	TypeVacationAnnouncement:   CategorySystemAnnouncements,
	TypeHolidayUpdated:         CategorySystemAnnouncements,
	TypeHolidayDeleted:         CategorySystemAnnouncements,
	TypeHolidayExpired:         CategorySystemAnnouncements,
	TypeWorkingHoursChanged:    CategorySystemAnnouncements,
	TypeAttendanceRulesChanged: CategorySystemAnnouncements,
	TypeAttendanceReminder:     CategoryAttendanceReminders,
}

func (t Type) Category() (Category, bool) {
	c, ok := typeCategories[t]
	return c, ok
}

func (t Type) Valid() bool {
	_, ok := typeCategories[t]
	return ok
}

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     string    `gorm:"type:varchar(20);not null;index:idx_notifications_employee_created"`
	Message        string    `gorm:"type:text;not null"`
	Type           Type      `gorm:"type:varchar(40);not null"`
	IsRead         bool      `gorm:"not null"`
	IdempotencyKey string    `gorm:"type:varchar(200);not null;uniqueIndex:uq_notification_idempotency_key"`
	CreatedAt      time.Time `gorm:"index:idx_notifications_employee_created"`
	ReadAt         *time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

type Preferences struct {
	LeaveStatus         bool `json:"leave_status"`
	SystemAnnouncements bool `json:"system_announcements"`
	AttendanceReminders bool `json:"attendance_reminders"`
}

func (p Preferences) Allows(c Category) bool {
	switch c {
	case CategoryLeaveStatus:
		return p.LeaveStatus
	case CategorySystemAnnouncements:
		return p.SystemAnnouncements
	case CategoryAttendanceReminders:
		return p.AttendanceReminders
	default:
		return false
	}
}

// Recipient is what fan-out needs to know about an employee.
type Recipient struct {
	NumericID   string      `json:"numeric_id"`
	FullName    string      `json:"full_name"`
	IsAdmin     bool        `json:"is_admin"`
	Preferences Preferences `json:"preferences"`
}

// Message is one logical event. Deliveries of the same EventID to the same
// recipient collapse into a single record.
type Message struct {
	Text    string
	Type    Type
	EventID string
}

func idempotencyKey(eventID, employeeID string) string {
	return eventID + ":" + employeeID
}
