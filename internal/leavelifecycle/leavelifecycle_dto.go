package leavelifecycle

import (
	"go-attendance/internal/leave"
	"go-attendance/internal/notification"
)

// DecisionResponse reports how far an approve or reject got. Steps that did
// not run keep their zero values.
type DecisionResponse struct {
	Leave          leave.LeaveResponse   `json:"leave"`
	LedgerRecorded bool                  `json:"ledger_recorded"`
	Notification   notification.Delivery `json:"notification,omitempty"`
}

type RemovalResponse struct {
	LeaveRequestID string `json:"leave_request_id"`
	Deleted        bool   `json:"deleted"`
}
