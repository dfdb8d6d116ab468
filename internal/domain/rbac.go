package domain

import "strings"

// Roles carried in the access token. Every employee holds exactly one.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// EnforceRequest is the authorization question asked by the HTTP layer: may
// Role perform Action on Resource.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

// Normalize trims user supplied whitespace and lowercases the role.
func (r EnforceRequest) Normalize() EnforceRequest {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Resource = strings.TrimSpace(r.Resource)
	r.Action = strings.TrimSpace(r.Action)
	return r
}

// Permission renders the pair as "resource:action".
func (r EnforceRequest) Permission() string {
	return r.Resource + ":" + r.Action
}

type EnforceResponse struct {
	Allowed    bool   `json:"allowed"`
	Permission string `json:"permission"`
}
