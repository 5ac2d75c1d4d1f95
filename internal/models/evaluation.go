package models

import "time"

// Evaluation is a graded review of a project by its mentor
type Evaluation struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ProjectID  string    `json:"project_id"`
	AcademicID string    `json:"academic_id"`
	Score      int       `json:"score"` // 0-100
	Remarks    string    `json:"remarks"`
	CreatedAt  time.Time `json:"created_at"`
}
