package entity

import "time"

// Category agrupa productos. El nombre es único por organización.
type Category struct {
	ID             int64
	Name           string
	Color          *string // hex #RGB o #RRGGBB
	OrganizationID string
	CreatedAt      time.Time
}
