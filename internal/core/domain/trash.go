package domain

import "time"

// TrashedSection is a durable copy of a deleted section. It is created
// before the section is spliced out of the manuscript and removed either
// by restore (content re-spliced into the document) or permanent delete.
// There is no automatic expiry.
type TrashedSection struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Level     int       `json:"level"`
	Content   []Node    `json:"content"`
	DeletedAt time.Time `json:"deletedAt"`
}
