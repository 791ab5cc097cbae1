package domain

import "time"

// User is an account participating in the economy. Tickets are the
// consumable currency spent on draws and granted by missions.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Tickets         int       `json:"tickets"`
	ShowcaseEntries []string  `json:"showcase_entries,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
