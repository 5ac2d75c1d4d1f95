package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projetakip/projetakip-backend/internal/models"
)

// DatabaseStore persists all entities in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database handle
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func wrapDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

// Category operations

func (d *DatabaseStore) CreateCategory(category *models.Category) (*models.Category, error) {
	existing, err := d.GetCategoryByName(category.Name)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("category name %q: %w", category.Name, ErrConflict)
	}
	category.ID = uuid.NewString()
	if err := d.db.Create(category).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return category, nil
}

func (d *DatabaseStore) GetCategory(id string) (*models.Category, error) {
	var category models.Category
	if err := d.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &category, nil
}

func (d *DatabaseStore) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := d.db.First(&category, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &category, nil
}

func (d *DatabaseStore) GetAllCategories() ([]*models.Category, error) {
	var categories []*models.Category
	if err := d.db.Find(&categories).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return categories, nil
}

func (d *DatabaseStore) UpdateCategory(category *models.Category) error {
	return wrapDBError(d.db.Save(category).Error)
}

func (d *DatabaseStore) DeleteCategory(id string) error {
	result := d.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return wrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Student operations

func (d *DatabaseStore) CreateStudent(student *models.Student) (*models.Student, error) {
	student.ID = uuid.NewString()
	if err := d.db.Create(student).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return student, nil
}

func (d *DatabaseStore) GetStudent(id string) (*models.Student, error) {
	var student models.Student
	if err := d.db.First(&student, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &student, nil
}

func (d *DatabaseStore) GetStudentByFullName(firstName, lastName string) (*models.Student, error) {
	var student models.Student
	err := d.db.First(&student,
		"LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &student, nil
}

func (d *DatabaseStore) GetAllStudents() ([]*models.Student, error) {
	var students []*models.Student
	if err := d.db.Find(&students).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return students, nil
}

// Academic operations

func (d *DatabaseStore) CreateAcademic(academic *models.Academic) (*models.Academic, error) {
	academic.ID = uuid.NewString()
	if err := d.db.Create(academic).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return academic, nil
}

func (d *DatabaseStore) GetAcademic(id string) (*models.Academic, error) {
	var academic models.Academic
	if err := d.db.First(&academic, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &academic, nil
}

func (d *DatabaseStore) GetAcademicByFullName(firstName, lastName string) (*models.Academic, error) {
	var academic models.Academic
	err := d.db.First(&academic,
		"LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &academic, nil
}

func (d *DatabaseStore) GetAllAcademics() ([]*models.Academic, error) {
	var academics []*models.Academic
	if err := d.db.Find(&academics).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return academics, nil
}

// Project operations

func (d *DatabaseStore) CreateProject(project *models.Project) (*models.Project, error) {
	project.ID = uuid.NewString()
	if project.Status == "" {
		project.Status = models.ProjectStatusPending
	}
	if err := d.db.Create(project).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return project, nil
}

func (d *DatabaseStore) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := d.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &project, nil
}

func (d *DatabaseStore) GetProjectsByStudent(studentID string) ([]*models.Project, error) {
	var projects []*models.Project
	if err := d.db.Find(&projects, "student_id = ?", studentID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return projects, nil
}

func (d *DatabaseStore) GetProjectsByMentor(academicID string) ([]*models.Project, error) {
	var projects []*models.Project
	if err := d.db.Find(&projects, "academic_id = ?", academicID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return projects, nil
}

func (d *DatabaseStore) GetAllProjects() ([]*models.Project, error) {
	var projects []*models.Project
	if err := d.db.Find(&projects).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return projects, nil
}

func (d *DatabaseStore) UpdateProject(project *models.Project) error {
	return wrapDBError(d.db.Save(project).Error)
}

func (d *DatabaseStore) CountProjectsByCategory(categoryID string) (int, error) {
	var count int64
	err := d.db.Model(&models.Project{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return 0, wrapDBError(err)
	}
	return int(count), nil
}

func (d *DatabaseStore) ReassignProjectsCategory(fromCategoryID, toCategoryID string) error {
	err := d.db.Model(&models.Project{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID).Error
	return wrapDBError(err)
}

// Meeting operations

func (d *DatabaseStore) CreateMeeting(meeting *models.Meeting) (*models.Meeting, error) {
	meeting.ID = uuid.NewString()
	if err := d.db.Create(meeting).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return meeting, nil
}

func (d *DatabaseStore) GetMeeting(id string) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := d.db.First(&meeting, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &meeting, nil
}

func (d *DatabaseStore) GetMeetingsByStudent(studentID string) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	if err := d.db.Find(&meetings, "student_id = ?", studentID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return meetings, nil
}

func (d *DatabaseStore) GetMeetingsByAcademic(academicID string) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	if err := d.db.Find(&meetings, "academic_id = ?", academicID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return meetings, nil
}

func (d *DatabaseStore) GetMeetingsByStatus(status models.MeetingStatus) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	if err := d.db.Find(&meetings, "status = ?", status).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return meetings, nil
}

func (d *DatabaseStore) GetAllMeetings() ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	if err := d.db.Find(&meetings).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return meetings, nil
}

func (d *DatabaseStore) UpdateMeeting(meeting *models.Meeting) error {
	return wrapDBError(d.db.Save(meeting).Error)
}

func (d *DatabaseStore) DeleteMeeting(id string) error {
	result := d.db.Delete(&models.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return wrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Comment operations

func (d *DatabaseStore) CreateComment(comment *models.Comment) (*models.Comment, error) {
	comment.ID = uuid.NewString()
	if err := d.db.Create(comment).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return comment, nil
}

func (d *DatabaseStore) GetCommentsByProject(projectID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := d.db.Find(&comments, "project_id = ?", projectID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return comments, nil
}

// Evaluation operations

func (d *DatabaseStore) CreateEvaluation(evaluation *models.Evaluation) (*models.Evaluation, error) {
	evaluation.ID = uuid.NewString()
	if err := d.db.Create(evaluation).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return evaluation, nil
}

func (d *DatabaseStore) GetEvaluationsByProject(projectID string) ([]*models.Evaluation, error) {
	var evaluations []*models.Evaluation
	if err := d.db.Find(&evaluations, "project_id = ?", projectID).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return evaluations, nil
}
