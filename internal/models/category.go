package models

import "time"

// Category groups projects under a named topic
type Category struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex"` // unique, compared case-insensitively
	Description string `json:"description"`
	Color       string `json:"color"` // hex, #RRGGBB

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultCategoryColor is used when the user skips the color question
const DefaultCategoryColor = "#6C757D"
