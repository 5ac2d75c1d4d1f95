package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

func seedMeetingWorld(t *testing.T, store *storage.MemoryStore) (*models.Student, *models.Academic, *models.Project) {
	t.Helper()
	student, err := store.CreateStudent(&models.Student{FirstName: "Can", LastName: "Demir"})
	require.NoError(t, err)
	academic, err := store.CreateAcademic(&models.Academic{FirstName: "Ayşe", LastName: "Yılmaz"})
	require.NoError(t, err)
	project, err := store.CreateProject(&models.Project{
		Name:       "Kütüphane Otomasyonu",
		StudentID:  student.ID,
		AcademicID: academic.ID,
	})
	require.NoError(t, err)
	return student, academic, project
}

func TestMeetingFlow_StudentSchedulesMeeting(t *testing.T) {
	assistant, store := newTestAssistant(t)
	student, academic, project := seedMeetingWorld(t, store)
	actor := models.Actor{ID: student.ID, Role: models.RoleStudent}
	ctx := context.Background()
	key := "user:can"

	result := assistant.HandleMessage(ctx, actor, key, "Toplantı oluşturmak istiyorum")
	assert.Contains(t, result.Reply, "Hangi proje")

	result = assistant.HandleMessage(ctx, actor, key, "kütüphane")
	assert.Contains(t, result.Reply, "konusu")

	result = assistant.HandleMessage(ctx, actor, key, "Ara rapor değerlendirmesi")
	assert.Contains(t, result.Reply, "ne zaman")

	result = assistant.HandleMessage(ctx, actor, key, "yarın 14:00")
	assert.Contains(t, result.Reply, "çevrimiçi")

	result = assistant.HandleMessage(ctx, actor, key, "yüz yüze")
	assert.Contains(t, result.Reply, "not")

	result = assistant.HandleMessage(ctx, actor, key, "yok")
	require.True(t, result.Executed)

	payload, ok := result.Data.(MeetingCreated)
	require.True(t, ok)
	meeting, err := store.GetMeeting(payload.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, meeting.ProjectID)
	assert.Equal(t, student.ID, meeting.StudentID)
	assert.Equal(t, academic.ID, meeting.AcademicID)
	assert.Equal(t, models.MeetingTypeInPerson, meeting.Type)
	assert.Equal(t, models.MeetingStatusAwaitingAcademicApproval, meeting.Status)

	tomorrow := time.Now().AddDate(0, 0, 1)
	assert.Equal(t, tomorrow.Day(), meeting.Time.Day())
	assert.Equal(t, 14, meeting.Time.Hour())
	assert.Equal(t, 0, meeting.Time.Minute())
}

func TestMeetingFlow_NoProjectsEndsConversation(t *testing.T) {
	assistant, store := newTestAssistant(t)
	student, err := store.CreateStudent(&models.Student{FirstName: "Can", LastName: "Demir"})
	require.NoError(t, err)
	actor := models.Actor{ID: student.ID, Role: models.RoleStudent}
	ctx := context.Background()
	key := "user:can"

	assistant.HandleMessage(ctx, actor, key, "Toplantı oluştur")
	result := assistant.HandleMessage(ctx, actor, key, "herhangi bir proje")
	assert.Contains(t, result.Reply, "proje bulunmuyor")

	_, active := assistant.drafts.Get(key)
	assert.False(t, active)
}

func TestMeetingFlow_ShortProjectQueryReprompts(t *testing.T) {
	assistant, store := newTestAssistant(t)
	student, _, _ := seedMeetingWorld(t, store)
	actor := models.Actor{ID: student.ID, Role: models.RoleStudent}
	ctx := context.Background()
	key := "user:can"

	assistant.HandleMessage(ctx, actor, key, "Toplantı oluştur")
	result := assistant.HandleMessage(ctx, actor, key, "ab")
	assert.Contains(t, result.Reply, "daha uzun")

	draft, active := assistant.drafts.Get(key)
	require.True(t, active)
	assert.Equal(t, QuestionMeetingProject, draft.Meeting.Pending)
}

func TestMeetingFlow_ProjectWithoutMentorIsRejected(t *testing.T) {
	assistant, store := newTestAssistant(t)
	student, err := store.CreateStudent(&models.Student{FirstName: "Can", LastName: "Demir"})
	require.NoError(t, err)
	_, err = store.CreateProject(&models.Project{Name: "Danışmansız Proje", StudentID: student.ID})
	require.NoError(t, err)

	actor := models.Actor{ID: student.ID, Role: models.RoleStudent}
	ctx := context.Background()
	key := "user:can"

	assistant.HandleMessage(ctx, actor, key, "Toplantı oluştur")
	assistant.HandleMessage(ctx, actor, key, "danışmansız proje")
	assistant.HandleMessage(ctx, actor, key, "Genel görüşme")
	assistant.HandleMessage(ctx, actor, key, "yarın 10:00")
	assistant.HandleMessage(ctx, actor, key, "yok")
	result := assistant.HandleMessage(ctx, actor, key, "yok")
	assert.False(t, result.Executed)
	assert.Contains(t, result.Reply, "danışman")

	_, active := assistant.drafts.Get(key)
	assert.False(t, active)
}

func TestMeetingFlow_AdminIsAskedForMissingParticipants(t *testing.T) {
	assistant, store := newTestAssistant(t)
	student, academic, _ := seedMeetingWorld(t, store)
	orphan, err := store.CreateProject(&models.Project{Name: "Sahipsiz Proje"})
	require.NoError(t, err)

	actor := models.Actor{ID: "ADM00001", Role: models.RoleAdmin}
	ctx := context.Background()
	key := "user:admin"

	assistant.HandleMessage(ctx, actor, key, "Toplantı planla")
	assistant.HandleMessage(ctx, actor, key, "sahipsiz proje")
	assistant.HandleMessage(ctx, actor, key, "Durum değerlendirmesi")
	assistant.HandleMessage(ctx, actor, key, "yarın 11:00")
	assistant.HandleMessage(ctx, actor, key, "çevrimiçi")
	result := assistant.HandleMessage(ctx, actor, key, "yok")
	assert.Contains(t, result.Reply, "katılımcı")

	// Students resolve before academics
	result = assistant.HandleMessage(ctx, actor, key, "Can Demir")
	assert.Contains(t, result.Reply, "katılımcı")

	result = assistant.HandleMessage(ctx, actor, key, "Ayşe Yılmaz")
	require.True(t, result.Executed)

	payload := result.Data.(MeetingCreated)
	meeting, err := store.GetMeeting(payload.ID)
	require.NoError(t, err)
	assert.Equal(t, orphan.ID, meeting.ProjectID)
	assert.Equal(t, student.ID, meeting.StudentID)
	assert.Equal(t, academic.ID, meeting.AcademicID)
	assert.Equal(t, models.MeetingStatusApproved, meeting.Status, "admin-created meetings skip negotiation")
}

func TestParseMeetingType(t *testing.T) {
	tests := []struct {
		input string
		want  models.MeetingType
		ok    bool
	}{
		{"çevrimiçi olsun", models.MeetingTypeOnline, true},
		{"online", models.MeetingTypeOnline, true},
		{"yüz yüze", models.MeetingTypeInPerson, true},
		{"ofiste buluşalım", models.MeetingTypeInPerson, true},
		{"yok", models.MeetingTypeOnline, true},
		{"bilmiyorum", "", false},
	}

	for _, tt := range tests {
		got, ok := parseMeetingType(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseRelativeDateTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	when, ok := ParseRelativeDateTime("yarın 14:30", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC), when)

	when, ok = ParseRelativeDateTime("bugün", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), when)

	when, ok = ParseRelativeDateTime("15.06.2026 10:30", now)
	require.True(t, ok)
	assert.Equal(t, 15, when.Day())
	assert.Equal(t, time.June, when.Month())
	assert.Equal(t, 10, when.Hour())

	_, ok = ParseRelativeDateTime("ne zaman olsa olur", now)
	assert.False(t, ok)
}
