package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
)

// Inputs shorter than this never go to the matcher; against short fragments
// the edit-distance fallback produces junk matches.
const minProjectQueryLen = 3

func (a *Assistant) startMeetingFlow(actor models.Actor, key string) TurnResult {
	draft := &MeetingDraft{}
	a.drafts.Set(key, &Draft{Kind: DraftMeeting, Meeting: draft})
	a.logger.Info("meeting conversation started", zap.String("session", key), zap.String("role", string(actor.Role)))
	return a.advanceMeeting(actor, key, draft)
}

func (a *Assistant) handleMeetingTurn(ctx context.Context, actor models.Actor, key, message string, draft *MeetingDraft) TurnResult {
	if draft.Pending != QuestionNone {
		if result, done := a.applyMeetingAnswer(ctx, actor, key, draft, message); done {
			if _, active := a.drafts.Get(key); active {
				a.drafts.Set(key, &Draft{Kind: DraftMeeting, Meeting: draft})
			}
			return result
		}
		draft.Pending = QuestionNone
	}
	a.drafts.Set(key, &Draft{Kind: DraftMeeting, Meeting: draft})
	return a.advanceMeeting(actor, key, draft)
}

// projectsForActor scopes the project search to what the actor owns.
// Admins get no pre-filter.
func (a *Assistant) projectsForActor(actor models.Actor) ([]*models.Project, error) {
	switch actor.Role {
	case models.RoleStudent:
		return a.store.GetProjectsByStudent(actor.ID)
	case models.RoleAcademic:
		return a.store.GetProjectsByMentor(actor.ID)
	default:
		return a.store.GetAllProjects()
	}
}

func (a *Assistant) applyMeetingAnswer(ctx context.Context, actor models.Actor, key string, draft *MeetingDraft, message string) (TurnResult, bool) {
	switch draft.Pending {
	case QuestionMeetingProject:
		projects, err := a.projectsForActor(actor)
		if err != nil {
			return TurnResult{Reply: "Projeler şu anda okunamıyor, lütfen tekrar deneyin."}, true
		}
		if len(projects) == 0 {
			a.drafts.Remove(key)
			return TurnResult{Reply: "Toplantı planlayabileceğiniz bir proje bulunmuyor."}, true
		}
		if utf8.RuneCountInString(strings.TrimSpace(message)) < minProjectQueryLen {
			return TurnResult{Reply: "Biraz daha uzun bir proje adı yazar mısınız? " + projectListPrompt(projects)}, true
		}
		candidates := lo.Map(projects, func(project *models.Project, _ int) Candidate {
			return Candidate{ID: project.ID, Name: project.Name}
		})
		id, ok := ResolveBestMatch(candidates, message)
		if !ok {
			return TurnResult{Reply: projectListPrompt(projects)}, true
		}
		project, _ := lo.Find(projects, func(p *models.Project) bool { return p.ID == id })
		draft.ProjectID = project.ID
		draft.ProjectName = project.Name

	case QuestionMeetingTitle:
		title := strings.TrimSpace(message)
		if title == "" {
			return TurnResult{Reply: "Toplantı başlığı boş olamaz. Toplantının konusu nedir?"}, true
		}
		draft.Title = title

	case QuestionMeetingTime:
		now := a.now()
		when, ok := a.extractor.ExtractDateTime(ctx, message, now)
		if !ok {
			when, ok = ParseRelativeDateTime(message, now)
		}
		if !ok {
			return TurnResult{Reply: "Tarihi anlayamadım. \"yarın 14:00\" ya da \"15.06.2026 10:30\" gibi yazabilirsiniz."}, true
		}
		draft.Time = &when

	case QuestionMeetingType:
		meetingType, ok := parseMeetingType(message)
		if !ok {
			return TurnResult{Reply: "Toplantı çevrimiçi mi yüz yüze mi olacak?"}, true
		}
		draft.Type = meetingType
		draft.TypeSet = true

	case QuestionMeetingNotes:
		if isNoneAnswer(message) {
			draft.Notes = ""
		} else {
			draft.Notes = strings.TrimSpace(message)
		}
		draft.NotesSet = true

	case QuestionMeetingCounterpart:
		first, last, ok := SplitFullName(message)
		if !ok {
			return TurnResult{Reply: "Lütfen katılımcının adını ve soyadını birlikte yazın."}, true
		}
		// Students are searched before academics
		if student, err := a.store.GetStudentByFullName(first, last); err == nil && draft.StudentID == "" {
			draft.StudentID = student.ID
			return TurnResult{}, false
		}
		if academic, err := a.store.GetAcademicByFullName(first, last); err == nil && draft.AcademicID == "" {
			draft.AcademicID = academic.ID
			return TurnResult{}, false
		}
		return TurnResult{Reply: fmt.Sprintf("%q adında bir kayıt bulamadım. Katılımcının adı soyadı nedir?", strings.TrimSpace(message))}, true
	}
	return TurnResult{}, false
}

func parseMeetingType(message string) (models.MeetingType, bool) {
	if isNoneAnswer(message) {
		return models.MeetingTypeOnline, true
	}
	normalized := NormalizeText(message)
	for _, word := range []string{"online", "çevrimiçi", "cevrimici", "uzaktan"} {
		if strings.Contains(normalized, word) {
			return models.MeetingTypeOnline, true
		}
	}
	for _, word := range []string{"yüz yüze", "yüzyüze", "yuz yuze", "ofis", "odada"} {
		if strings.Contains(normalized, word) {
			return models.MeetingTypeInPerson, true
		}
	}
	return "", false
}

func (a *Assistant) advanceMeeting(actor models.Actor, key string, draft *MeetingDraft) TurnResult {
	ask := func(q Question, prompt string) TurnResult {
		draft.Pending = q
		a.drafts.Set(key, &Draft{Kind: DraftMeeting, Meeting: draft})
		return TurnResult{Reply: prompt}
	}

	if draft.ProjectID == "" {
		return ask(QuestionMeetingProject, "Hangi proje için toplantı planlayalım?")
	}
	if draft.Title == "" {
		return ask(QuestionMeetingTitle, "Toplantının konusu nedir?")
	}
	if draft.Time == nil {
		return ask(QuestionMeetingTime, "Toplantı ne zaman olsun? (ör. \"yarın 14:00\" ya da \"15.06.2026 10:30\")")
	}
	if !draft.TypeSet {
		return ask(QuestionMeetingType, "Toplantı çevrimiçi mi yüz yüze mi olacak? (farketmiyorsa 'yok' yazın)")
	}
	if !draft.NotesSet {
		return ask(QuestionMeetingNotes, "Eklemek istediğiniz bir not var mı? (yoksa 'yok' yazın)")
	}

	// All visible slots are filled; resolve the participants
	project, err := a.store.GetProject(draft.ProjectID)
	if err != nil {
		a.drafts.Remove(key)
		return TurnResult{Reply: "Seçilen proje artık bulunamıyor, işlem iptal edildi."}
	}

	switch actor.Role {
	case models.RoleStudent:
		draft.StudentID = actor.ID
		if project.AcademicID == "" {
			a.drafts.Remove(key)
			return TurnResult{Reply: "Bu projeye atanmış bir danışman yok. Önce projeye danışman eklenmeli."}
		}
		draft.AcademicID = project.AcademicID

	case models.RoleAcademic:
		draft.AcademicID = actor.ID
		if project.StudentID == "" {
			a.drafts.Remove(key)
			return TurnResult{Reply: "Bu projeye atanmış bir öğrenci yok. Önce projeye öğrenci eklenmeli."}
		}
		draft.StudentID = project.StudentID

	case models.RoleAdmin:
		if draft.StudentID == "" {
			draft.StudentID = project.StudentID
		}
		if draft.AcademicID == "" {
			draft.AcademicID = project.AcademicID
		}
		if draft.StudentID == "" || draft.AcademicID == "" {
			return ask(QuestionMeetingCounterpart, "Toplantının eksik katılımcısının adı soyadı nedir?")
		}
	}

	return a.finalizeMeeting(actor, key, draft)
}

func (a *Assistant) finalizeMeeting(actor models.Actor, key string, draft *MeetingDraft) TurnResult {
	meeting, err := a.meetings.Create(actor, MeetingInput{
		ProjectID:  draft.ProjectID,
		StudentID:  draft.StudentID,
		AcademicID: draft.AcademicID,
		Title:      draft.Title,
		Time:       *draft.Time,
		Type:       draft.Type,
		Notes:      draft.Notes,
	})
	if err != nil {
		a.logger.Error("meeting creation failed", zap.Error(err))
		return TurnResult{Reply: "Toplantı kaydedilemedi, lütfen tekrar deneyin."}
	}

	a.drafts.Remove(key)

	typeLabel := "Çevrimiçi"
	if meeting.Type == models.MeetingTypeInPerson {
		typeLabel = "Yüz yüze"
	}
	statusLine := ""
	switch meeting.Status {
	case models.MeetingStatusAwaitingAcademicApproval:
		statusLine = "Danışman onayı bekleniyor."
	case models.MeetingStatusAwaitingStudentApproval:
		statusLine = "Öğrenci onayı bekleniyor."
	case models.MeetingStatusApproved:
		statusLine = "Toplantı onaylandı."
	}

	reply := fmt.Sprintf("✅ %q projesi için toplantı talebi oluşturuldu.\nKonu: %s\nZaman: %s\nTür: %s\n%s",
		draft.ProjectName, meeting.Title, meeting.Time.Format("02.01.2006 15:04"), typeLabel, statusLine)
	return TurnResult{
		Reply:    reply,
		Executed: true,
		Data:     MeetingCreated{ID: meeting.ID, URL: a.detailURL("/meetings", meeting.ID)},
	}
}

func projectListPrompt(projects []*models.Project) string {
	names := lo.Map(projects, func(project *models.Project, _ int) string { return project.Name })
	return "Projeleriniz: " + strings.Join(names, ", ")
}
