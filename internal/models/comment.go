package models

import "time"

// Comment is a remark left on a project by any participant
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ProjectID  string    `json:"project_id"`
	AuthorID   string    `json:"author_id"`
	AuthorRole Role      `json:"author_role"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
