package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"

	SourceFace   = "FACE"
	SourceManual = "MANUAL"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     string     `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex:uq_attendances_employee_date,priority:1"`
	EmployeeName   string     `gorm:"column:employee_name;type:varchar(150)"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_employee_date,priority:2;index"`
	CheckIn        time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut       *time.Time `gorm:"column:check_out;type:timestamptz"`
	Latitude       *float64   `gorm:"column:latitude"`
	Longitude      *float64   `gorm:"column:longitude"`
	Status         string     `gorm:"column:status;type:varchar(20);not null"`
	Source         string     `gorm:"column:source;type:varchar(30);not null"`
	ExternalRef    *string    `gorm:"column:external_ref;type:varchar(100)"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
