package customers

import "time"

// Customer is a plain shop customer record.
type Customer struct {
	ID            string    `json:"customer_id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}
