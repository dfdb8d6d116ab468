package identity

import (
	"strings"
	"time"

	"go-attendance/internal/domain"

	"github.com/google/uuid"
)

// AdminNumericID is reserved for the administrator and never reassigned.
const AdminNumericID = 1

const RoleAdmin = domain.RoleAdmin

// OwnedTables carry an employee_id column holding the owner's numeric id.
// Renumbering moves these rows together with their owner.
var OwnedTables = []string{"leave_requests", "leave_days_taken", "notifications", "attendances"}

// NumberedEmployee is the slice of an employee row the renumbering pass needs.
type NumberedEmployee struct {
	ID        uuid.UUID `gorm:"column:id"`
	NumericID int       `gorm:"column:numeric_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

type ResequenceReport struct {
	Checked    int `json:"checked"`
	Reassigned int `json:"reassigned"`
	MaxID      int `json:"max_id"`
}

// DetachedOwner is the employee_id written on rows left behind by a deleted
// employee. It is never a valid numeric id, so renumbering cannot hand those
// rows to whoever takes the freed number.
func DetachedOwner(id uuid.UUID) string {
	return "~" + strings.ReplaceAll(id.String(), "-", "")[:19]
}
