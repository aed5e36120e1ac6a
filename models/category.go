package models

import "time"

// Category is a named, colored grouping for tasks. Categories are never
// seeded automatically; they exist only if explicitly created.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	IsDeleted bool      `json:"-"`
}
