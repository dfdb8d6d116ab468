package attendance

// CheckInRequest is posted by the face-recognition service or the employee.
// EmployeeID lets an admin check someone else in.
type CheckInRequest struct {
	EmployeeID  string   `json:"employee_id" binding:"omitempty,numeric"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
	Source      string   `json:"source"`
	ExternalRef *string  `json:"external_ref" binding:"omitempty,max=100"`
	Notes       *string  `json:"notes"`
}

type CheckOutRequest struct {
	EmployeeID string   `json:"employee_id" binding:"omitempty,numeric"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes      *string  `json:"notes"`
}

type ListFilter struct {
	EmployeeID string
	Date       string
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	CheckIn        string   `json:"check_in"`
	CheckOut       *string  `json:"check_out,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
	ExternalRef    *string  `json:"external_ref,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type ReminderReport struct {
	Date       string `json:"date"`
	Recipients int    `json:"recipients"`
	Delivered  int    `json:"delivered"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
