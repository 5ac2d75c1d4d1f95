package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetakip/projetakip-backend/internal/models"
)

func TestCategoryFlow_StudentsAreRefused(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	actor := models.Actor{ID: "STU00001", Role: models.RoleStudent}

	result := assistant.HandleMessage(context.Background(), actor, "user:x", "Kategori oluşturmak istiyorum")
	assert.Contains(t, result.Reply, "yetkiniz yok")

	// The refusal must not open a session
	_, active := assistant.drafts.Get("user:x")
	assert.False(t, active)
}

func TestCategoryFlow_CreatesCategory(t *testing.T) {
	assistant, store := newTestAssistant(t)
	actor := models.Actor{ID: "ACD00001", Role: models.RoleAcademic}
	ctx := context.Background()
	key := "user:hoca"

	result := assistant.HandleMessage(ctx, actor, key, "Kategori oluştur")
	assert.Contains(t, result.Reply, "Kategorinin adı")

	result = assistant.HandleMessage(ctx, actor, key, "Yapay Zeka")
	assert.Contains(t, result.Reply, "açıklama")

	result = assistant.HandleMessage(ctx, actor, key, "Makine öğrenmesi projeleri")
	assert.Contains(t, result.Reply, "reng")

	result = assistant.HandleMessage(ctx, actor, key, "mavi")
	require.True(t, result.Executed)

	payload, ok := result.Data.(CategoryCreated)
	require.True(t, ok)
	created, err := store.GetCategory(payload.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yapay Zeka", created.Name)
	assert.Equal(t, "Makine öğrenmesi projeleri", created.Description)
	assert.Equal(t, "#0D6EFD", created.Color)
}

func TestCategoryFlow_NoneAnswersUseDefaults(t *testing.T) {
	assistant, store := newTestAssistant(t)
	actor := models.Actor{ID: "ADM00001", Role: models.RoleAdmin}
	ctx := context.Background()
	key := "user:admin"

	assistant.HandleMessage(ctx, actor, key, "Kategori oluştur")
	assistant.HandleMessage(ctx, actor, key, "Gömülü Sistemler")
	assistant.HandleMessage(ctx, actor, key, "yok")
	result := assistant.HandleMessage(ctx, actor, key, "yok")
	require.True(t, result.Executed)

	payload := result.Data.(CategoryCreated)
	created, err := store.GetCategory(payload.ID)
	require.NoError(t, err)
	assert.Empty(t, created.Description)
	assert.Equal(t, models.DefaultCategoryColor, created.Color)
}

func TestCategoryFlow_DuplicateNameEndsConversation(t *testing.T) {
	assistant, store := newTestAssistant(t)
	existing, err := store.CreateCategory(&models.Category{Name: "Web", Color: "#0D6EFD"})
	require.NoError(t, err)

	actor := models.Actor{ID: "ACD00001", Role: models.RoleAcademic}
	ctx := context.Background()
	key := "user:hoca"

	assistant.HandleMessage(ctx, actor, key, "Kategori oluştur")
	result := assistant.HandleMessage(ctx, actor, key, "Web")
	assert.False(t, result.Executed)
	assert.Contains(t, result.Reply, "zaten var")

	payload, ok := result.Data.(CategoryCreated)
	require.True(t, ok)
	assert.Equal(t, existing.ID, payload.ID)

	// Conversation is over; a later message does not resume it
	_, active := assistant.drafts.Get(key)
	assert.False(t, active)
}

func TestCategoryFlow_InvalidColorReprompts(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	actor := models.Actor{ID: "ACD00001", Role: models.RoleAcademic}
	ctx := context.Background()
	key := "user:hoca"

	assistant.HandleMessage(ctx, actor, key, "Kategori oluştur")
	assistant.HandleMessage(ctx, actor, key, "Robotik")
	assistant.HandleMessage(ctx, actor, key, "yok")

	result := assistant.HandleMessage(ctx, actor, key, "parlak bir şey")
	assert.Contains(t, result.Reply, "RRGGBB")

	result = assistant.HandleMessage(ctx, actor, key, "#aabbcc")
	require.True(t, result.Executed)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"#0D6EFD", "#0D6EFD", true},
		{"#aabbcc", "#AABBCC", true},
		{"mavi", "#0D6EFD", true},
		{"KIRMIZI", "#DC3545", true},
		{"yok", models.DefaultCategoryColor, true},
		{"#12345", "", false},
		{"camgöbeği", "", false},
	}

	for _, tt := range tests {
		got, ok := parseColor(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
