package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// namedColors maps the accepted Turkish color words to hex values
var namedColors = map[string]string{
	"kırmızı": "#DC3545",
	"mavi":    "#0D6EFD",
	"yeşil":   "#198754",
	"sarı":    "#FFC107",
	"turuncu": "#FD7E14",
	"mor":     "#6F42C1",
	"siyah":   "#212529",
	"gri":     "#6C757D",
}

func (a *Assistant) startCategoryFlow(actor models.Actor, key string) TurnResult {
	// Students cannot define categories; refuse before any session exists
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleAcademic {
		return TurnResult{Reply: "Kategori oluşturma yetkiniz yok."}
	}

	draft := &CategoryDraft{}
	a.drafts.Set(key, &Draft{Kind: DraftCategory, Category: draft})
	a.logger.Info("category conversation started", zap.String("session", key))
	return a.advanceCategory(key, draft)
}

func (a *Assistant) handleCategoryTurn(actor models.Actor, key, message string, draft *CategoryDraft) TurnResult {
	if draft.Pending != QuestionNone {
		if result, done := a.applyCategoryAnswer(key, draft, message); done {
			if _, active := a.drafts.Get(key); active {
				a.drafts.Set(key, &Draft{Kind: DraftCategory, Category: draft})
			}
			return result
		}
		draft.Pending = QuestionNone
	}
	a.drafts.Set(key, &Draft{Kind: DraftCategory, Category: draft})
	return a.advanceCategory(key, draft)
}

func (a *Assistant) applyCategoryAnswer(key string, draft *CategoryDraft, message string) (TurnResult, bool) {
	switch draft.Pending {
	case QuestionCategoryName:
		name := strings.TrimSpace(message)
		if name == "" {
			return TurnResult{Reply: "Kategori adı boş olamaz. Kategorinin adı ne olsun?"}, true
		}
		// A name that already exists ends the conversation with a pointer to
		// the existing record instead of a duplicate
		existing, err := a.store.GetCategoryByName(name)
		if err == nil {
			a.drafts.Remove(key)
			return TurnResult{
				Reply: fmt.Sprintf("%q adında bir kategori zaten var.", existing.Name),
				Data:  CategoryCreated{ID: existing.ID, URL: a.detailURL("/categories", existing.ID)},
			}, true
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return TurnResult{Reply: "Kategori kontrolü başarısız oldu, lütfen tekrar deneyin."}, true
		}
		draft.Name = name

	case QuestionCategoryDescription:
		if isNoneAnswer(message) {
			draft.Description = ""
		} else {
			draft.Description = strings.TrimSpace(message)
		}
		draft.DescriptionSet = true

	case QuestionCategoryColor:
		color, ok := parseColor(message)
		if !ok {
			return TurnResult{Reply: "Rengi anlayamadım. #RRGGBB biçiminde (ör. #0D6EFD) ya da mavi, yeşil, kırmızı gibi bir renk adı yazın; istemiyorsanız 'yok' deyin."}, true
		}
		draft.Color = color
	}
	return TurnResult{}, false
}

func parseColor(message string) (string, bool) {
	if isNoneAnswer(message) {
		return models.DefaultCategoryColor, true
	}
	trimmed := strings.TrimSpace(message)
	if hexColorPattern.MatchString(trimmed) {
		return strings.ToUpper(trimmed), true
	}
	if hex, ok := namedColors[NormalizeText(trimmed)]; ok {
		return hex, true
	}
	return "", false
}

func (a *Assistant) advanceCategory(key string, draft *CategoryDraft) TurnResult {
	ask := func(q Question, prompt string) TurnResult {
		draft.Pending = q
		a.drafts.Set(key, &Draft{Kind: DraftCategory, Category: draft})
		return TurnResult{Reply: prompt}
	}

	if draft.Name == "" {
		return ask(QuestionCategoryName, "Yeni bir kategori oluşturalım. Kategorinin adı ne olsun?")
	}
	if !draft.DescriptionSet {
		return ask(QuestionCategoryDescription, "Kategori için bir açıklama ister misiniz? (istemiyorsanız 'yok' yazın)")
	}
	if draft.Color == "" {
		return ask(QuestionCategoryColor, "Kategorinin rengi ne olsun? (#RRGGBB ya da bir renk adı — istemiyorsanız 'yok' yazın)")
	}

	return a.finalizeCategory(key, draft)
}

func (a *Assistant) finalizeCategory(key string, draft *CategoryDraft) TurnResult {
	category := &models.Category{
		Name:        draft.Name,
		Description: draft.Description,
		Color:       draft.Color,
	}

	created, err := a.store.CreateCategory(category)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// Someone created the same name mid-conversation
			a.drafts.Remove(key)
			if existing, lookupErr := a.store.GetCategoryByName(draft.Name); lookupErr == nil {
				return TurnResult{
					Reply: fmt.Sprintf("%q adında bir kategori zaten var.", existing.Name),
					Data:  CategoryCreated{ID: existing.ID, URL: a.detailURL("/categories", existing.ID)},
				}
			}
			return TurnResult{Reply: fmt.Sprintf("%q adında bir kategori zaten var.", draft.Name)}
		}
		a.logger.Error("category creation failed", zap.Error(err))
		return TurnResult{Reply: "Kategori kaydedilemedi, lütfen tekrar deneyin."}
	}

	a.drafts.Remove(key)
	return TurnResult{
		Reply:    fmt.Sprintf("✅ %q kategorisi oluşturuldu.", created.Name),
		Executed: true,
		Data:     CategoryCreated{ID: created.ID, URL: a.detailURL("/categories", created.ID)},
	}
}
