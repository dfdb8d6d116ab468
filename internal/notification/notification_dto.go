package notification

type NotifyEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,numeric"`
	Message    string `json:"message" binding:"required"`
	Type       string `json:"type" binding:"required"`
	EventID    string `json:"event_id"`
}

type BroadcastRequest struct {
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"required"`
	EventID string `json:"event_id"`
}

type NotificationResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Message    string  `json:"message"`
	Type       string  `json:"type"`
	IsRead     bool    `json:"is_read"`
	CreatedAt  string  `json:"created_at"`
	ReadAt     *string `json:"read_at,omitempty"`
}

type Delivery string

const (
	DeliveryCreated   Delivery = "created"
	DeliverySkipped   Delivery = "skipped"
	DeliveryDuplicate Delivery = "duplicate"
)

type DeliveryResponse struct {
	EmployeeID string   `json:"employee_id"`
	EventID    string   `json:"event_id"`
	Delivery   Delivery `json:"delivery"`
}

type FanoutReport struct {
	EventID    string `json:"event_id"`
	Recipients int    `json:"recipients"`
	Delivered  int    `json:"delivered"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

type UnreadCountResponse struct {
	EmployeeID string `json:"employee_id"`
	Unread     int64  `json:"unread"`
}
