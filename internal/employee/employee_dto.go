package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Role           string `json:"role" binding:"omitempty,oneof=admin employee"`
	DepartmentName string `json:"department_name"`
}

type UpdatePreferencesRequest struct {
	LeaveStatus         *bool `json:"leave_status"`
	SystemAnnouncements *bool `json:"system_announcements"`
	AttendanceReminders *bool `json:"attendance_reminders"`
}

type PreferencesResponse struct {
	LeaveStatus         bool `json:"leave_status"`
	SystemAnnouncements bool `json:"system_announcements"`
	AttendanceReminders bool `json:"attendance_reminders"`
}

type EmployeeResponse struct {
	ID             string              `json:"id"`
	NumericID      int                 `json:"numeric_id"`
	FullName       string              `json:"full_name"`
	Email          string              `json:"email"`
	Role           string              `json:"role"`
	DepartmentName string              `json:"department_name,omitempty"`
	Preferences    PreferencesResponse `json:"notification_preferences"`
}

type DeleteEmployeeResponse struct {
	Deleted    bool `json:"deleted"`
	Checked    int  `json:"renumbered_checked"`
	Reassigned int  `json:"renumbered_reassigned"`
}
