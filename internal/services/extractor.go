package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ProjectIntent is a structured "create project" command pulled out of a
// free-text message.
type ProjectIntent struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Extractor pulls structure out of natural language. Implementations may be
// unavailable or simply fail; callers always fall back to deterministic
// parsing, so a false return is never an error condition.
type Extractor interface {
	ExtractProjectIntent(ctx context.Context, text string) (*ProjectIntent, bool)
	ExtractDateTime(ctx context.Context, text string, now time.Time) (time.Time, bool)
}

// NoopExtractor always reports no extraction. Used when no API key is
// configured; every flow then relies on the deterministic fallbacks.
type NoopExtractor struct{}

func (NoopExtractor) ExtractProjectIntent(context.Context, string) (*ProjectIntent, bool) {
	return nil, false
}

func (NoopExtractor) ExtractDateTime(context.Context, string, time.Time) (time.Time, bool) {
	return time.Time{}, false
}

// OpenAIExtractor asks a chat model for structured extractions
type OpenAIExtractor struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

func NewOpenAIExtractor(apiKey, model string, maxTokens int, temperature float64, timeout time.Duration, logger *zap.Logger) *OpenAIExtractor {
	return &OpenAIExtractor{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

func (e *OpenAIExtractor) complete(ctx context.Context, prompt string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   e.maxTokens,
			Temperature: float32(e.temperature),
		},
	)
	if err != nil {
		e.logger.Warn("extractor completion failed", zap.Error(err))
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), true
}

// ExtractProjectIntent returns a structured create-project command when the
// message contains one, or false for anything else (including model errors).
func (e *OpenAIExtractor) ExtractProjectIntent(ctx context.Context, text string) (*ProjectIntent, bool) {
	prompt := `The user message below is in Turkish. If it asks to create a project, extract what you can and return JSON:
{"create": true, "name": "...", "category": "...", "description": "..."}
Use empty strings for fields the message does not mention. If the message does not ask to create a project, return {"create": false}.

Message: ` + text

	response, ok := e.complete(ctx, prompt)
	if !ok {
		return nil, false
	}

	var parsed struct {
		Create bool `json:"create"`
		ProjectIntent
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		e.logger.Warn("extractor returned unparsable intent", zap.String("response", response))
		return nil, false
	}
	if !parsed.Create {
		return nil, false
	}
	return &parsed.ProjectIntent, true
}

// ExtractDateTime resolves a Turkish date/time phrase relative to now.
func (e *OpenAIExtractor) ExtractDateTime(ctx context.Context, text string, now time.Time) (time.Time, bool) {
	prompt := `The user message below is in Turkish and may contain a date and time, possibly relative ("yarın 14:00"). The current time is ` +
		now.Format(time.RFC3339) + `. Return JSON {"found": true, "time": "<RFC3339>"} or {"found": false}.

Message: ` + text

	response, ok := e.complete(ctx, prompt)
	if !ok {
		return time.Time{}, false
	}

	var parsed struct {
		Found bool   `json:"found"`
		Time  string `json:"time"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil || !parsed.Found {
		return time.Time{}, false
	}
	extractedAt, err := time.ParseInLocation(time.RFC3339, parsed.Time, now.Location())
	if err != nil {
		e.logger.Warn("extractor returned unparsable time", zap.String("time", parsed.Time))
		return time.Time{}, false
	}
	return extractedAt, true
}

// Deterministic fallbacks, used whenever the extractor is unavailable or
// returns nothing.

var dateLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006 15.04",
	"02.01.2006",
	"2.1.2006 15:04",
	"2.1.2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseLocalDate parses a date in the regional day-first convention.
func ParseLocalDate(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var clockPattern = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)

// ParseRelativeDateTime handles the small deterministic vocabulary the
// regex fallback covers: "bugün"/"yarın" with an optional clock time, or a
// plain regional date.
func ParseRelativeDateTime(text string, now time.Time) (time.Time, bool) {
	normalized := NormalizeText(text)

	day := time.Time{}
	switch {
	case strings.Contains(normalized, "bugün"):
		day = now
	case strings.Contains(normalized, "yarın"):
		day = now.AddDate(0, 0, 1)
	default:
		return ParseLocalDate(text)
	}

	hour, minute := 9, 0 // default meeting hour when only the day is given
	if m := clockPattern.FindStringSubmatch(normalized); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h < 24 && mm < 60 {
			hour, minute = h, mm
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), true
}
