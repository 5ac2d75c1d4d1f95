package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// startProjectFlow is the default route for messages without an active
// draft. A creation intent opens a project draft, optionally pre-filled by
// the extractor; anything else gets the capability hint.
func (a *Assistant) startProjectFlow(ctx context.Context, actor models.Actor, key, message string) TurnResult {
	draft := &ProjectDraft{}
	intentMatched := isProjectIntent(message)

	if intent, ok := a.extractor.ExtractProjectIntent(ctx, message); ok {
		intentMatched = true
		draft.Name = strings.TrimSpace(intent.Name)
		draft.Description = strings.TrimSpace(intent.Description)
		draft.CategoryText = strings.TrimSpace(intent.Category)
	}

	if !intentMatched {
		return TurnResult{Reply: "Size proje, kategori veya toplantı oluşturmada yardımcı olabilirim. " +
			"Örneğin: \"Proje oluşturmak istiyorum\" yazabilirsiniz."}
	}

	// Students are always the project's own student; never asked
	if actor.Role == models.RoleStudent {
		draft.StudentID = actor.ID
	}

	a.drafts.Set(key, &Draft{Kind: DraftProject, Project: draft})
	a.logger.Info("project conversation started", zap.String("session", key), zap.String("role", string(actor.Role)))
	return a.advanceProject(actor, key, draft)
}

func (a *Assistant) handleProjectTurn(actor models.Actor, key, message string, draft *ProjectDraft) TurnResult {
	if draft.Pending != QuestionNone {
		if result, done := a.applyProjectAnswer(actor, draft, message); done {
			a.drafts.Set(key, &Draft{Kind: DraftProject, Project: draft})
			return result
		}
		draft.Pending = QuestionNone
	}
	a.drafts.Set(key, &Draft{Kind: DraftProject, Project: draft})
	return a.advanceProject(actor, key, draft)
}

// applyProjectAnswer interprets the message as the answer to the pending
// question. A true second return means the turn ends here with a re-prompt;
// the pending question is kept so the next message answers it again.
func (a *Assistant) applyProjectAnswer(actor models.Actor, draft *ProjectDraft, message string) (TurnResult, bool) {
	switch draft.Pending {
	case QuestionProjectName:
		name := strings.Trim(strings.TrimSpace(message), `"'`)
		if name == "" {
			return TurnResult{Reply: "Proje adı boş olamaz. Projenin adı ne olsun?"}, true
		}
		draft.Name = name

	case QuestionProjectDescription:
		// Description is mandatory; "yok" does not opt out of it
		if strings.TrimSpace(message) == "" || isNoneAnswer(message) {
			return TurnResult{Reply: "Açıklama zorunlu. Projeyi kısaca tanımlar mısınız?"}, true
		}
		draft.Description = strings.TrimSpace(message)

	case QuestionProjectCategory:
		categories, err := a.store.GetAllCategories()
		if err != nil {
			return TurnResult{Reply: "Kategoriler şu anda okunamıyor, lütfen tekrar deneyin."}, true
		}
		candidates := categoryCandidates(categories)
		id, ok := ResolveStrictMatch(candidates, message)
		if !ok {
			return TurnResult{Reply: "Bu kategoriyi bulamadım. " + categoryListPrompt(categories)}, true
		}
		draft.CategoryID = id
		draft.CategoryText = message

	case QuestionProjectMentor:
		first, last, ok := SplitFullName(message)
		if !ok {
			return TurnResult{Reply: "Lütfen danışmanın adını ve soyadını birlikte yazın (ör. Ayşe Yılmaz)."}, true
		}
		academic, err := a.store.GetAcademicByFullName(first, last)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return TurnResult{Reply: fmt.Sprintf("%q adında bir akademisyen bulamadım. Danışmanın adı soyadı nedir?", strings.TrimSpace(message))}, true
			}
			return TurnResult{Reply: "Danışman araması başarısız oldu, lütfen tekrar deneyin."}, true
		}
		draft.MentorID = academic.ID

	case QuestionProjectStudent:
		first, last, ok := SplitFullName(message)
		if !ok {
			return TurnResult{Reply: "Lütfen öğrencinin adını ve soyadını birlikte yazın."}, true
		}
		student, err := a.store.GetStudentByFullName(first, last)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return TurnResult{Reply: fmt.Sprintf("%q adında bir öğrenci bulamadım. Öğrencinin adı soyadı nedir?", strings.TrimSpace(message))}, true
			}
			return TurnResult{Reply: "Öğrenci araması başarısız oldu, lütfen tekrar deneyin."}, true
		}
		draft.StudentID = student.ID

	case QuestionProjectDueDate:
		if !isNoneAnswer(message) {
			due, ok := ParseLocalDate(message)
			if !ok {
				return TurnResult{Reply: "Tarihi anlayamadım. Örnek: 15.06.2026 — teslim tarihi yoksa 'yok' yazın."}, true
			}
			draft.DueDate = &due
		}
		draft.DueDateAsked = true
	}
	return TurnResult{}, false
}

// advanceProject finds the first missing slot, asks for it, or finalizes
func (a *Assistant) advanceProject(actor models.Actor, key string, draft *ProjectDraft) TurnResult {
	ask := func(q Question, prompt string) TurnResult {
		draft.Pending = q
		a.drafts.Set(key, &Draft{Kind: DraftProject, Project: draft})
		return TurnResult{Reply: prompt}
	}

	if draft.Name == "" {
		return ask(QuestionProjectName, "Harika, yeni bir proje oluşturalım. Projenin adı ne olsun?")
	}
	if draft.Description == "" {
		return ask(QuestionProjectDescription, "Projeyi kısaca tanımlar mısınız?")
	}
	if draft.CategoryID == "" {
		// Text captured up front (e.g. by the extractor) gets one resolution
		// attempt before the user is asked
		if draft.CategoryText != "" && !isNoneAnswer(draft.CategoryText) {
			categories, err := a.store.GetAllCategories()
			if err == nil {
				if id, ok := ResolveStrictMatch(categoryCandidates(categories), draft.CategoryText); ok {
					draft.CategoryID = id
				}
			}
		}
		if draft.CategoryID == "" {
			categories, _ := a.store.GetAllCategories()
			return ask(QuestionProjectCategory, categoryListPrompt(categories))
		}
	}
	if draft.MentorID == "" && (actor.Role == models.RoleStudent || actor.Role == models.RoleAdmin) {
		return ask(QuestionProjectMentor, "Danışman hocanın adı soyadı nedir?")
	}
	if draft.StudentID == "" && (actor.Role == models.RoleAcademic || actor.Role == models.RoleAdmin) {
		return ask(QuestionProjectStudent, "Projeyi yürütecek öğrencinin adı soyadı nedir?")
	}
	if !draft.DueDateAsked {
		return ask(QuestionProjectDueDate, "Teslim tarihi var mı? (ör. 15.06.2026 — yoksa 'yok' yazın)")
	}

	return a.finalizeProject(actor, key, draft)
}

func (a *Assistant) finalizeProject(actor models.Actor, key string, draft *ProjectDraft) TurnResult {
	// An academic who never named a mentor becomes the mentor
	if draft.MentorID == "" && actor.Role == models.RoleAcademic {
		draft.MentorID = actor.ID
	}

	project := &models.Project{
		Name:        draft.Name,
		Description: draft.Description,
		CategoryID:  draft.CategoryID,
		AcademicID:  draft.MentorID,
		StudentID:   draft.StudentID,
		DueDate:     draft.DueDate,
		Status:      models.ProjectStatusPending,
	}

	created, err := a.store.CreateProject(project)
	if err != nil {
		a.logger.Error("project creation failed", zap.Error(err))
		return TurnResult{Reply: "Proje kaydedilemedi, lütfen tekrar deneyin."}
	}

	a.drafts.Remove(key)
	a.notifier.Notify(EventProjectCreated, created)

	categoryName := "—"
	if category, err := a.store.GetCategory(created.CategoryID); err == nil {
		categoryName = category.Name
	}
	mentorName := "—"
	if created.AcademicID != "" {
		if academic, err := a.store.GetAcademic(created.AcademicID); err == nil {
			mentorName = academic.FullName()
		}
	}
	dueDate := "—"
	if created.DueDate != nil {
		dueDate = created.DueDate.Format("02.01.2006")
	}

	reply := fmt.Sprintf("✅ %q projesi oluşturuldu.\nKategori: %s\nDanışman: %s\nTeslim tarihi: %s",
		created.Name, categoryName, mentorName, dueDate)
	return TurnResult{
		Reply:    reply,
		Executed: true,
		Data:     ProjectCreated{ID: created.ID, URL: a.detailURL("/projects", created.ID)},
	}
}

func categoryCandidates(categories []*models.Category) []Candidate {
	return lo.Map(categories, func(category *models.Category, _ int) Candidate {
		return Candidate{ID: category.ID, Name: category.Name}
	})
}

func categoryListPrompt(categories []*models.Category) string {
	if len(categories) == 0 {
		return "Henüz tanımlı bir kategori yok. Önce bir kategori oluşturmanız gerekiyor."
	}
	names := lo.Map(categories, func(category *models.Category, _ int) string { return category.Name })
	return "Proje hangi kategoride? Mevcut kategoriler: " + strings.Join(names, ", ")
}
