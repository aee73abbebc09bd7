package models

import "time"

// Link is a shared link. PostedBy holds the owning user's id and is empty
// for orphaned rows; it is set once at creation and never reassigned.
type Link struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedBy    string    `json:"postedById,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
