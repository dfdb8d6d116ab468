package leave

import "time"

type SubmitLeaveRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LeaveType    string `json:"leave_type" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Reason       string `json:"reason"`
	// LeaveDays is accepted for compatibility and otherwise ignored.
	LeaveDays *int `json:"leave_days"`
}

type ListFilter struct {
	EmployeeID string
	Status     Status
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	LeaveDays    int    `json:"leave_days"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	Expired      bool   `json:"expired"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// NewLeaveResponse renders l with Expired evaluated against today.
func NewLeaveResponse(l LeaveRequest, today time.Time) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveType:    string(l.LeaveType),
		StartDate:    l.StartDate.Format(DateLayout),
		EndDate:      l.EndDate.Format(DateLayout),
		LeaveDays:    l.LeaveDays,
		Reason:       l.Reason,
		Status:       string(l.Status),
		Expired:      l.Expired(today),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}
