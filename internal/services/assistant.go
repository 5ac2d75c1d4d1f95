package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// TurnResult is the assistant's answer to one inbound message
type TurnResult struct {
	Reply    string      `json:"reply"`
	Executed bool        `json:"executed"`
	Data     interface{} `json:"data,omitempty"`
}

// Typed payloads attached to executed turns
type ProjectCreated struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CategoryCreated struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type MeetingCreated struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Assistant drives the multi-turn creation conversations. One message in,
// one reply out; drafts carry the state between turns.
type Assistant struct {
	store     storage.Store
	drafts    *DraftStore
	extractor Extractor
	meetings  *MeetingService
	notifier  Notifier
	baseURL   string
	now       func() time.Time
	logger    *zap.Logger
}

// NewAssistant creates the dialogue engine
func NewAssistant(store storage.Store, drafts *DraftStore, extractor Extractor, meetings *MeetingService, notifier Notifier, baseURL string, logger *zap.Logger) *Assistant {
	return &Assistant{
		store:     store,
		drafts:    drafts,
		extractor: extractor,
		meetings:  meetings,
		notifier:  notifier,
		baseURL:   baseURL,
		now:       time.Now,
		logger:    logger,
	}
}

// cancelWords is the abort vocabulary, matched word-by-word
var cancelWords = map[string]struct{}{
	"iptal":   {},
	"vazgeç":  {},
	"vazgec":  {},
	"kapat":   {},
	"cancel":  {},
	"sıfırla": {},
}

func isCancelMessage(message string) bool {
	for _, word := range strings.Fields(NormalizeText(message)) {
		if _, ok := cancelWords[word]; ok {
			return true
		}
	}
	return false
}

// isNoneAnswer recognizes the "none" reply. "yok" is a natural-language
// spelling only; the HTTP surface never uses it as a sentinel.
func isNoneAnswer(message string) bool {
	return NormalizeText(message) == "yok"
}

var createVerbs = []string{"oluştur", "yarat", "ekle", "aç", "planla", "ayarla"}

func hasCreateVerb(normalized string) bool {
	for _, verb := range createVerbs {
		if strings.Contains(normalized, verb) {
			return true
		}
	}
	return false
}

func isCategoryIntent(message string) bool {
	normalized := NormalizeText(message)
	return strings.Contains(normalized, "kategori") && hasCreateVerb(normalized)
}

func isMeetingIntent(message string) bool {
	normalized := NormalizeText(message)
	return (strings.Contains(normalized, "toplantı") || strings.Contains(normalized, "randevu")) &&
		hasCreateVerb(normalized)
}

func isProjectIntent(message string) bool {
	normalized := NormalizeText(message)
	return strings.Contains(normalized, "proje") && hasCreateVerb(normalized)
}

// HandleMessage processes one turn for the given session key. Priority:
// cancel vocabulary, then the active draft (category over meeting over
// project), then fresh intent detection.
func (a *Assistant) HandleMessage(ctx context.Context, actor models.Actor, key, message string) TurnResult {
	message = strings.TrimSpace(message)

	if isCancelMessage(message) {
		// Clearing with no active draft is a deliberate no-op
		a.drafts.Remove(key)
		return TurnResult{Reply: "İşlem iptal edildi. Yeni bir istekle tekrar başlayabilirsiniz."}
	}

	if draft, ok := a.drafts.Get(key); ok {
		switch draft.Kind {
		case DraftCategory:
			return a.handleCategoryTurn(actor, key, message, draft.Category)
		case DraftMeeting:
			return a.handleMeetingTurn(ctx, actor, key, message, draft.Meeting)
		case DraftProject:
			return a.handleProjectTurn(actor, key, message, draft.Project)
		}
	}

	switch {
	case isCategoryIntent(message):
		return a.startCategoryFlow(actor, key)
	case isMeetingIntent(message):
		return a.startMeetingFlow(actor, key)
	default:
		return a.startProjectFlow(ctx, actor, key, message)
	}
}

// Reset clears every draft kind for the caller's session key
func (a *Assistant) Reset(key string) {
	a.drafts.Remove(key)
}

// detailURL builds the link returned with created entities
func (a *Assistant) detailURL(path, id string) string {
	return strings.TrimSuffix(a.baseURL, "/") + path + "/" + id
}
