package storage

import (
	"errors"

	"github.com/projetakip/projetakip-backend/internal/models"
)

// Sentinel errors returned by every Store implementation
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Store defines the interface for storage operations
type Store interface {
	// Category operations
	CreateCategory(category *models.Category) (*models.Category, error)
	GetCategory(id string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	GetAllCategories() ([]*models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id string) error

	// Student operations
	CreateStudent(student *models.Student) (*models.Student, error)
	GetStudent(id string) (*models.Student, error)
	GetStudentByFullName(firstName, lastName string) (*models.Student, error)
	GetAllStudents() ([]*models.Student, error)

	// Academic operations
	CreateAcademic(academic *models.Academic) (*models.Academic, error)
	GetAcademic(id string) (*models.Academic, error)
	GetAcademicByFullName(firstName, lastName string) (*models.Academic, error)
	GetAllAcademics() ([]*models.Academic, error)

	// Project operations
	CreateProject(project *models.Project) (*models.Project, error)
	GetProject(id string) (*models.Project, error)
	GetProjectsByStudent(studentID string) ([]*models.Project, error)
	GetProjectsByMentor(academicID string) ([]*models.Project, error)
	GetAllProjects() ([]*models.Project, error)
	UpdateProject(project *models.Project) error
	CountProjectsByCategory(categoryID string) (int, error)
	ReassignProjectsCategory(fromCategoryID, toCategoryID string) error

	// Meeting operations
	CreateMeeting(meeting *models.Meeting) (*models.Meeting, error)
	GetMeeting(id string) (*models.Meeting, error)
	GetMeetingsByStudent(studentID string) ([]*models.Meeting, error)
	GetMeetingsByAcademic(academicID string) ([]*models.Meeting, error)
	GetMeetingsByStatus(status models.MeetingStatus) ([]*models.Meeting, error)
	GetAllMeetings() ([]*models.Meeting, error)
	UpdateMeeting(meeting *models.Meeting) error
	DeleteMeeting(id string) error

	// Comment operations
	CreateComment(comment *models.Comment) (*models.Comment, error)
	GetCommentsByProject(projectID string) ([]*models.Comment, error)

	// Evaluation operations
	CreateEvaluation(evaluation *models.Evaluation) (*models.Evaluation, error)
	GetEvaluationsByProject(projectID string) ([]*models.Evaluation, error)
}
