package models

import "time"

// Student represents an enrolled student who can own projects
type Student struct {
	ID        string `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Number    string `json:"number"` // university student number

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used in replies and summaries
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Academic represents a faculty member who mentors projects
type Academic struct {
	ID        string `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Title     string `json:"title"` // e.g. "Dr.", "Prof."

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used in replies and summaries
func (a *Academic) FullName() string {
	return a.FirstName + " " + a.LastName
}
