package repairs

import "time"

// Repair order statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// RepairOrder tracks a customer's device through the repair workflow.
type RepairOrder struct {
	ID               string    `json:"order_id"`
	CustomerID       string    `json:"customer_id"`
	ProductDetails   string    `json:"product_details"`
	IssueDescription string    `json:"issue_description"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
