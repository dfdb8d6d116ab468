package policy

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_date"`
	Description string    `gorm:"type:text"`
	Expired     bool      `gorm:"not null"`
	ExpiredAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}

const (
	SettingWorkingHours    = "working_hours"
	SettingAttendanceRules = "attendance_rules"
)

// CompanySetting is a singleton row per key holding a JSON document.
type CompanySetting struct {
	Key       string `gorm:"type:varchar(50);primaryKey"`
	Value     []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (CompanySetting) TableName() string {
	return "company_settings"
}

type WorkingHours struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	GraceMinutes int    `json:"grace_minutes"`
}

type AttendanceRules struct {
	LateAfterMinutes   int  `json:"late_after_minutes"`
	HalfDayAfterHours  int  `json:"half_day_after_hours"`
	RequireFaceCheckIn bool `json:"require_face_check_in"`
}

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: "09:00", End: "17:00", GraceMinutes: 15}
}

func DefaultAttendanceRules() AttendanceRules {
	return AttendanceRules{LateAfterMinutes: 15, HalfDayAfterHours: 4, RequireFaceCheckIn: true}
}

// StartsAt returns the working day start on date, in UTC.
func (w WorkingHours) StartsAt(date time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", w.Start)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
