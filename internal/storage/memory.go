package storage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/projetakip/projetakip-backend/internal/models"
)

// MemoryStore holds all data in memory, used for tests and local development
type MemoryStore struct {
	categories  map[string]*models.Category
	students    map[string]*models.Student
	academics   map[string]*models.Academic
	projects    map[string]*models.Project
	meetings    map[string]*models.Meeting
	comments    map[string]*models.Comment
	evaluations map[string]*models.Evaluation

	// Mutexes for thread safety
	categoryMu   sync.RWMutex
	personMu     sync.RWMutex
	projectMu    sync.RWMutex
	meetingMu    sync.RWMutex
	commentMu    sync.RWMutex
	evaluationMu sync.RWMutex

	// Counters for ID generation
	categoryCounter   int
	studentCounter    int
	academicCounter   int
	projectCounter    int
	meetingCounter    int
	commentCounter    int
	evaluationCounter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories:  make(map[string]*models.Category),
		students:    make(map[string]*models.Student),
		academics:   make(map[string]*models.Academic),
		projects:    make(map[string]*models.Project),
		meetings:    make(map[string]*models.Meeting),
		comments:    make(map[string]*models.Comment),
		evaluations: make(map[string]*models.Evaluation),
	}
}

// Category operations

func (m *MemoryStore) CreateCategory(category *models.Category) (*models.Category, error) {
	m.categoryMu.Lock()
	defer m.categoryMu.Unlock()

	for _, existing := range m.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return nil, fmt.Errorf("category name %q: %w", category.Name, ErrConflict)
		}
	}

	m.categoryCounter++
	category.ID = fmt.Sprintf("CAT%05d", m.categoryCounter)
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	m.categories[category.ID] = category
	return category, nil
}

func (m *MemoryStore) GetCategory(id string) (*models.Category, error) {
	m.categoryMu.RLock()
	defer m.categoryMu.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, ErrNotFound
	}
	return category, nil
}

func (m *MemoryStore) GetCategoryByName(name string) (*models.Category, error) {
	m.categoryMu.RLock()
	defer m.categoryMu.RUnlock()

	for _, category := range m.categories {
		if strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllCategories() ([]*models.Category, error) {
	m.categoryMu.RLock()
	defer m.categoryMu.RUnlock()

	categories := make([]*models.Category, 0, len(m.categories))
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *MemoryStore) UpdateCategory(category *models.Category) error {
	m.categoryMu.Lock()
	defer m.categoryMu.Unlock()

	if _, exists := m.categories[category.ID]; !exists {
		return ErrNotFound
	}
	category.UpdatedAt = time.Now()
	m.categories[category.ID] = category
	return nil
}

func (m *MemoryStore) DeleteCategory(id string) error {
	m.categoryMu.Lock()
	defer m.categoryMu.Unlock()

	if _, exists := m.categories[id]; !exists {
		return ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// Student operations

func (m *MemoryStore) CreateStudent(student *models.Student) (*models.Student, error) {
	m.personMu.Lock()
	defer m.personMu.Unlock()

	m.studentCounter++
	student.ID = fmt.Sprintf("STU%05d", m.studentCounter)
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()

	m.students[student.ID] = student
	return student, nil
}

func (m *MemoryStore) GetStudent(id string) (*models.Student, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	student, exists := m.students[id]
	if !exists {
		return nil, ErrNotFound
	}
	return student, nil
}

func (m *MemoryStore) GetStudentByFullName(firstName, lastName string) (*models.Student, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	for _, student := range m.students {
		if strings.EqualFold(student.FirstName, firstName) && strings.EqualFold(student.LastName, lastName) {
			return student, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllStudents() ([]*models.Student, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	students := make([]*models.Student, 0, len(m.students))
	for _, student := range m.students {
		students = append(students, student)
	}
	return students, nil
}

// Academic operations

func (m *MemoryStore) CreateAcademic(academic *models.Academic) (*models.Academic, error) {
	m.personMu.Lock()
	defer m.personMu.Unlock()

	m.academicCounter++
	academic.ID = fmt.Sprintf("ACD%05d", m.academicCounter)
	academic.CreatedAt = time.Now()
	academic.UpdatedAt = time.Now()

	m.academics[academic.ID] = academic
	return academic, nil
}

func (m *MemoryStore) GetAcademic(id string) (*models.Academic, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	academic, exists := m.academics[id]
	if !exists {
		return nil, ErrNotFound
	}
	return academic, nil
}

func (m *MemoryStore) GetAcademicByFullName(firstName, lastName string) (*models.Academic, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	for _, academic := range m.academics {
		if strings.EqualFold(academic.FirstName, firstName) && strings.EqualFold(academic.LastName, lastName) {
			return academic, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllAcademics() ([]*models.Academic, error) {
	m.personMu.RLock()
	defer m.personMu.RUnlock()

	academics := make([]*models.Academic, 0, len(m.academics))
	for _, academic := range m.academics {
		academics = append(academics, academic)
	}
	return academics, nil
}

// Project operations

func (m *MemoryStore) CreateProject(project *models.Project) (*models.Project, error) {
	m.projectMu.Lock()
	defer m.projectMu.Unlock()

	m.projectCounter++
	project.ID = fmt.Sprintf("PRJ%05d", m.projectCounter)
	if project.Status == "" {
		project.Status = models.ProjectStatusPending
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	m.projects[project.ID] = project
	return project, nil
}

func (m *MemoryStore) GetProject(id string) (*models.Project, error) {
	m.projectMu.RLock()
	defer m.projectMu.RUnlock()

	project, exists := m.projects[id]
	if !exists {
		return nil, ErrNotFound
	}
	return project, nil
}

func (m *MemoryStore) GetProjectsByStudent(studentID string) ([]*models.Project, error) {
	m.projectMu.RLock()
	defer m.projectMu.RUnlock()

	var projects []*models.Project
	for _, project := range m.projects {
		if project.StudentID == studentID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (m *MemoryStore) GetProjectsByMentor(academicID string) ([]*models.Project, error) {
	m.projectMu.RLock()
	defer m.projectMu.RUnlock()

	var projects []*models.Project
	for _, project := range m.projects {
		if project.AcademicID == academicID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (m *MemoryStore) GetAllProjects() ([]*models.Project, error) {
	m.projectMu.RLock()
	defer m.projectMu.RUnlock()

	projects := make([]*models.Project, 0, len(m.projects))
	for _, project := range m.projects {
		projects = append(projects, project)
	}
	return projects, nil
}

func (m *MemoryStore) UpdateProject(project *models.Project) error {
	m.projectMu.Lock()
	defer m.projectMu.Unlock()

	if _, exists := m.projects[project.ID]; !exists {
		return ErrNotFound
	}
	project.UpdatedAt = time.Now()
	m.projects[project.ID] = project
	return nil
}

func (m *MemoryStore) CountProjectsByCategory(categoryID string) (int, error) {
	m.projectMu.RLock()
	defer m.projectMu.RUnlock()

	count := 0
	for _, project := range m.projects {
		if project.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) ReassignProjectsCategory(fromCategoryID, toCategoryID string) error {
	m.projectMu.Lock()
	defer m.projectMu.Unlock()

	for _, project := range m.projects {
		if project.CategoryID == fromCategoryID {
			project.CategoryID = toCategoryID
			project.UpdatedAt = time.Now()
		}
	}
	return nil
}

// Meeting operations

// cloneMeeting shields stored meetings from caller mutation: reads hand out
// copies and writes store copies, so a failed transition or a Bucket
// recomputation never touches store state.
func cloneMeeting(meeting *models.Meeting) *models.Meeting {
	clone := *meeting
	return &clone
}

func (m *MemoryStore) CreateMeeting(meeting *models.Meeting) (*models.Meeting, error) {
	m.meetingMu.Lock()
	defer m.meetingMu.Unlock()

	m.meetingCounter++
	meeting.ID = fmt.Sprintf("MTG%05d", m.meetingCounter)
	meeting.CreatedAt = time.Now()
	meeting.UpdatedAt = time.Now()

	m.meetings[meeting.ID] = cloneMeeting(meeting)
	return meeting, nil
}

func (m *MemoryStore) GetMeeting(id string) (*models.Meeting, error) {
	m.meetingMu.RLock()
	defer m.meetingMu.RUnlock()

	meeting, exists := m.meetings[id]
	if !exists {
		return nil, ErrNotFound
	}
	return cloneMeeting(meeting), nil
}

func (m *MemoryStore) GetMeetingsByStudent(studentID string) ([]*models.Meeting, error) {
	m.meetingMu.RLock()
	defer m.meetingMu.RUnlock()

	var meetings []*models.Meeting
	for _, meeting := range m.meetings {
		if meeting.StudentID == studentID {
			meetings = append(meetings, cloneMeeting(meeting))
		}
	}
	return meetings, nil
}

func (m *MemoryStore) GetMeetingsByAcademic(academicID string) ([]*models.Meeting, error) {
	m.meetingMu.RLock()
	defer m.meetingMu.RUnlock()

	var meetings []*models.Meeting
	for _, meeting := range m.meetings {
		if meeting.AcademicID == academicID {
			meetings = append(meetings, cloneMeeting(meeting))
		}
	}
	return meetings, nil
}

func (m *MemoryStore) GetMeetingsByStatus(status models.MeetingStatus) ([]*models.Meeting, error) {
	m.meetingMu.RLock()
	defer m.meetingMu.RUnlock()

	var meetings []*models.Meeting
	for _, meeting := range m.meetings {
		if meeting.Status == status {
			meetings = append(meetings, cloneMeeting(meeting))
		}
	}
	return meetings, nil
}

func (m *MemoryStore) GetAllMeetings() ([]*models.Meeting, error) {
	m.meetingMu.RLock()
	defer m.meetingMu.RUnlock()

	meetings := make([]*models.Meeting, 0, len(m.meetings))
	for _, meeting := range m.meetings {
		meetings = append(meetings, cloneMeeting(meeting))
	}
	return meetings, nil
}

func (m *MemoryStore) UpdateMeeting(meeting *models.Meeting) error {
	m.meetingMu.Lock()
	defer m.meetingMu.Unlock()

	if _, exists := m.meetings[meeting.ID]; !exists {
		return ErrNotFound
	}
	meeting.UpdatedAt = time.Now()
	m.meetings[meeting.ID] = cloneMeeting(meeting)
	return nil
}

func (m *MemoryStore) DeleteMeeting(id string) error {
	m.meetingMu.Lock()
	defer m.meetingMu.Unlock()

	if _, exists := m.meetings[id]; !exists {
		return ErrNotFound
	}
	delete(m.meetings, id)
	return nil
}

// Comment operations

func (m *MemoryStore) CreateComment(comment *models.Comment) (*models.Comment, error) {
	m.commentMu.Lock()
	defer m.commentMu.Unlock()

	m.commentCounter++
	comment.ID = fmt.Sprintf("CMT%05d", m.commentCounter)
	comment.CreatedAt = time.Now()

	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *MemoryStore) GetCommentsByProject(projectID string) ([]*models.Comment, error) {
	m.commentMu.RLock()
	defer m.commentMu.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.ProjectID == projectID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

// Evaluation operations

func (m *MemoryStore) CreateEvaluation(evaluation *models.Evaluation) (*models.Evaluation, error) {
	m.evaluationMu.Lock()
	defer m.evaluationMu.Unlock()

	m.evaluationCounter++
	evaluation.ID = fmt.Sprintf("EVL%05d", m.evaluationCounter)
	evaluation.CreatedAt = time.Now()

	m.evaluations[evaluation.ID] = evaluation
	return evaluation, nil
}

func (m *MemoryStore) GetEvaluationsByProject(projectID string) ([]*models.Evaluation, error) {
	m.evaluationMu.RLock()
	defer m.evaluationMu.RUnlock()

	var evaluations []*models.Evaluation
	for _, evaluation := range m.evaluations {
		if evaluation.ProjectID == projectID {
			evaluations = append(evaluations, evaluation)
		}
	}
	return evaluations, nil
}
