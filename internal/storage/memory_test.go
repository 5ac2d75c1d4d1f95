package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetakip/projetakip-backend/internal/models"
)

func TestMemoryStore_CategoryLifecycle(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateCategory(&models.Category{Name: "Web", Color: "#0D6EFD"})
	require.NoError(t, err)
	assert.Equal(t, "CAT00001", created.ID)

	// Names are unique, case-insensitively
	_, err = store.CreateCategory(&models.Category{Name: "web"})
	assert.ErrorIs(t, err, ErrConflict)

	byName, err := store.GetCategoryByName("WEB")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	created.Description = "Web projeleri"
	require.NoError(t, store.UpdateCategory(created))

	require.NoError(t, store.DeleteCategory(created.ID))
	_, err = store.GetCategory(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PersonLookupByFullName(t *testing.T) {
	store := NewMemoryStore()

	student, err := store.CreateStudent(&models.Student{FirstName: "Ayşe", LastName: "Demir"})
	require.NoError(t, err)
	academic, err := store.CreateAcademic(&models.Academic{FirstName: "Mehmet", LastName: "Kaya"})
	require.NoError(t, err)

	found, err := store.GetStudentByFullName("ayşe", "demir")
	require.NoError(t, err)
	assert.Equal(t, student.ID, found.ID)

	foundAcademic, err := store.GetAcademicByFullName("Mehmet", "Kaya")
	require.NoError(t, err)
	assert.Equal(t, academic.ID, foundAcademic.ID)

	_, err = store.GetStudentByFullName("Mehmet", "Kaya")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ProjectScoping(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateProject(&models.Project{Name: "A", StudentID: "STU00001", AcademicID: "ACD00001", CategoryID: "CAT00001"})
	require.NoError(t, err)
	_, err = store.CreateProject(&models.Project{Name: "B", StudentID: "STU00002", AcademicID: "ACD00001", CategoryID: "CAT00001"})
	require.NoError(t, err)
	_, err = store.CreateProject(&models.Project{Name: "C", StudentID: "STU00001", AcademicID: "ACD00002", CategoryID: "CAT00002"})
	require.NoError(t, err)

	byStudent, err := store.GetProjectsByStudent("STU00001")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byMentor, err := store.GetProjectsByMentor("ACD00001")
	require.NoError(t, err)
	assert.Len(t, byMentor, 2)

	count, err := store.CountProjectsByCategory("CAT00001")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryStore_ReassignProjectsCategory(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.CreateProject(&models.Project{Name: "A", CategoryID: "CAT00001"})
	require.NoError(t, err)
	second, err := store.CreateProject(&models.Project{Name: "B", CategoryID: "CAT00002"})
	require.NoError(t, err)

	require.NoError(t, store.ReassignProjectsCategory("CAT00001", "CAT00003"))

	moved, err := store.GetProject(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "CAT00003", moved.CategoryID)

	untouched, err := store.GetProject(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "CAT00002", untouched.CategoryID)
}

func TestMemoryStore_MeetingQueries(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateMeeting(&models.Meeting{
		StudentID:  "STU00001",
		AcademicID: "ACD00001",
		Status:     models.MeetingStatusApproved,
		Time:       time.Now(),
	})
	require.NoError(t, err)
	pending, err := store.CreateMeeting(&models.Meeting{
		StudentID:  "STU00001",
		AcademicID: "ACD00002",
		Status:     models.MeetingStatusAwaitingAcademicApproval,
		Time:       time.Now(),
	})
	require.NoError(t, err)

	byStudent, err := store.GetMeetingsByStudent("STU00001")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byAcademic, err := store.GetMeetingsByAcademic("ACD00002")
	require.NoError(t, err)
	assert.Len(t, byAcademic, 1)

	byStatus, err := store.GetMeetingsByStatus(models.MeetingStatusApproved)
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	require.NoError(t, store.DeleteMeeting(pending.ID))
	_, err = store.GetMeeting(pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_MeetingReadsAreCopies(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateMeeting(&models.Meeting{
		StudentID:  "STU00001",
		AcademicID: "ACD00001",
		Status:     models.MeetingStatusAwaitingAcademicApproval,
		Time:       time.Now(),
	})
	require.NoError(t, err)

	fetched, err := store.GetMeeting(created.ID)
	require.NoError(t, err)
	fetched.Status = models.MeetingStatusApproved
	fetched.Bucket = models.TimeBucketToday

	stored, err := store.GetMeeting(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStatusAwaitingAcademicApproval, stored.Status, "mutating a fetched meeting must not touch the store")
	assert.Empty(t, stored.Bucket)

	listed, err := store.GetMeetingsByStudent("STU00001")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed[0].Status = models.MeetingStatusCancelled

	stored, err = store.GetMeeting(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStatusAwaitingAcademicApproval, stored.Status)

	// The handle passed to UpdateMeeting stays the caller's own afterwards.
	require.NoError(t, store.UpdateMeeting(fetched))
	fetched.Status = models.MeetingStatusCancelled
	stored, err = store.GetMeeting(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStatusApproved, stored.Status)
}

func TestMemoryStore_CommentsAndEvaluations(t *testing.T) {
	store := NewMemoryStore()

	project, err := store.CreateProject(&models.Project{Name: "A"})
	require.NoError(t, err)

	_, err = store.CreateComment(&models.Comment{ProjectID: project.ID, AuthorID: "STU00001", AuthorRole: models.RoleStudent, Body: "İlk adım tamam"})
	require.NoError(t, err)
	_, err = store.CreateComment(&models.Comment{ProjectID: "PRJ99999", AuthorID: "STU00001", AuthorRole: models.RoleStudent, Body: "Başka proje"})
	require.NoError(t, err)

	comments, err := store.GetCommentsByProject(project.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = store.CreateEvaluation(&models.Evaluation{ProjectID: project.ID, AcademicID: "ACD00001", Score: 85})
	require.NoError(t, err)

	evaluations, err := store.GetEvaluationsByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, evaluations, 1)
	assert.Equal(t, 85, evaluations[0].Score)
}
