package services

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/projetakip/projetakip-backend/internal/models"
)

// Question marks which slot the assistant asked about on the previous turn.
// The next message from the same session key is interpreted as its answer.
type Question string

const (
	QuestionNone Question = ""

	QuestionProjectName        Question = "project_name"
	QuestionProjectDescription Question = "project_description"
	QuestionProjectCategory    Question = "project_category"
	QuestionProjectMentor      Question = "project_mentor"
	QuestionProjectStudent     Question = "project_student"
	QuestionProjectDueDate     Question = "project_due_date"

	QuestionCategoryName        Question = "category_name"
	QuestionCategoryDescription Question = "category_description"
	QuestionCategoryColor       Question = "category_color"

	QuestionMeetingProject     Question = "meeting_project"
	QuestionMeetingTitle       Question = "meeting_title"
	QuestionMeetingTime        Question = "meeting_time"
	QuestionMeetingType        Question = "meeting_type"
	QuestionMeetingNotes       Question = "meeting_notes"
	QuestionMeetingCounterpart Question = "meeting_counterpart"
)

// ProjectDraft is the in-progress state of a project creation conversation
type ProjectDraft struct {
	Name         string
	Description  string
	CategoryText string
	CategoryID   string
	MentorID     string
	StudentID    string
	DueDate      *time.Time

	DueDateAsked bool
	Pending      Question
}

// CategoryDraft is the in-progress state of a category creation conversation
type CategoryDraft struct {
	Name           string
	Description    string
	DescriptionSet bool
	Color          string
	Pending        Question
}

// MeetingDraft is the in-progress state of a meeting creation conversation
type MeetingDraft struct {
	ProjectID   string
	ProjectName string
	StudentID   string
	AcademicID  string

	Title    string
	Time     *time.Time
	Type     models.MeetingType
	TypeSet  bool
	Notes    string
	NotesSet bool

	Pending Question
}

// DraftKind tags which conversation is active for a session key
type DraftKind int

const (
	DraftNone DraftKind = iota
	DraftProject
	DraftCategory
	DraftMeeting
)

// Draft holds at most one active conversation per session key. Only the
// field matching Kind is non-nil, which makes the one-flow-at-a-time rule
// structural instead of a dispatch convention.
type Draft struct {
	Kind     DraftKind
	Project  *ProjectDraft
	Category *CategoryDraft
	Meeting  *MeetingDraft
}

// DraftStore keeps conversation drafts per session key. Backed by a sharded
// concurrent map so operations on different keys never contend on one lock.
// Drafts have no TTL: they live until commit, cancel or reset, or until the
// process restarts. Unbounded keys are a known cost of that choice.
type DraftStore struct {
	drafts cmap.ConcurrentMap[string, *Draft]
}

// NewDraftStore creates an empty draft store
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: cmap.New[*Draft]()}
}

// Get returns the active draft for a session key, if any
func (s *DraftStore) Get(key string) (*Draft, bool) {
	return s.drafts.Get(key)
}

// Set stores the active draft for a session key
func (s *DraftStore) Set(key string, draft *Draft) {
	s.drafts.Set(key, draft)
}

// Remove clears the active draft for a session key
func (s *DraftStore) Remove(key string) {
	s.drafts.Remove(key)
}
