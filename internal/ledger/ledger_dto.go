package ledger

type EntryResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	LeaveRequestID string `json:"leave_request_id"`
	LeaveDays      int    `json:"leave_days"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ApprovedAt     string `json:"approved_at"`
}

type TotalDaysResponse struct {
	EmployeeID string `json:"employee_id"`
	TotalDays  int64  `json:"total_days"`
}
