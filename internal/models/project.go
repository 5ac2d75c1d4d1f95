package models

import "time"

// ProjectStatus tracks a project's lifecycle
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is a student project supervised by an academic mentor
type Project struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`

	// Mentor and student are optional until assigned
	AcademicID string `json:"academic_id"`
	StudentID  string `json:"student_id"`

	DueDate *time.Time    `json:"due_date"`
	Status  ProjectStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
