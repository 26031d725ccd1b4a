package entity

import "time"

// Category groups products. Deletable only while no product references it.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
