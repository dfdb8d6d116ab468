package policy

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
	Expired     bool    `json:"expired"`
	ExpiredAt   *string `json:"expired_at,omitempty"`
}

type WorkingHoursRequest struct {
	Start        string `json:"start" binding:"required"`
	End          string `json:"end" binding:"required"`
	GraceMinutes *int   `json:"grace_minutes" binding:"omitempty,min=0,max=180"`
}

type AttendanceRulesRequest struct {
	LateAfterMinutes   int   `json:"late_after_minutes" binding:"min=0,max=240"`
	HalfDayAfterHours  int   `json:"half_day_after_hours" binding:"min=1,max=12"`
	RequireFaceCheckIn *bool `json:"require_face_check_in"`
}

type VacationAnnouncementRequest struct {
	Message   string `json:"message" binding:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AnnouncementResponse struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ExpireReport struct {
	Checked int `json:"checked"`
	Expired int `json:"expired"`
}
