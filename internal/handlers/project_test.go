package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// withActor injects the caller identity the way the auth middleware would
func withActor(actor models.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("actor", actor)
		c.Locals("session_key", "user:"+actor.ID)
		return c.Next()
	}
}

func newProjectTestApp(actor models.Actor) (*fiber.App, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	handler := NewProjectHandler(store, services.NewZapNotifier(zap.NewNop()))

	app := fiber.New()
	app.Use(withActor(actor))
	app.Get("/projects", handler.ListProjects)
	app.Get("/projects/:id", handler.GetProject)
	app.Put("/projects/:id/status", handler.UpdateProjectStatus)
	app.Post("/projects/:id/comments", handler.AddComment)
	app.Post("/projects/:id/evaluations", handler.AddEvaluation)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestListProjects_ScopedByRole(t *testing.T) {
	student := models.Actor{ID: "STU00001", Role: models.RoleStudent}
	app, store := newProjectTestApp(student)

	_, err := store.CreateProject(&models.Project{Name: "Mine", StudentID: "STU00001"})
	require.NoError(t, err)
	_, err = store.CreateProject(&models.Project{Name: "Someone else's", StudentID: "STU00002"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/projects", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count    int               `json:"count"`
		Projects []*models.Project `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Mine", body.Projects[0].Name)
}

func TestUpdateProjectStatus(t *testing.T) {
	mentor := models.Actor{ID: "ACD00001", Role: models.RoleAcademic}
	app, store := newProjectTestApp(mentor)

	project, err := store.CreateProject(&models.Project{Name: "Tez", AcademicID: "ACD00001"})
	require.NoError(t, err)

	status := doJSON(t, app, "PUT", "/projects/"+project.ID+"/status", fiber.Map{"status": "completed"})
	assert.Equal(t, fiber.StatusOK, status)

	updated, err := store.GetProject(project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, updated.Status)

	status = doJSON(t, app, "PUT", "/projects/"+project.ID+"/status", fiber.Map{"status": "archived"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateProjectStatus_ForeignMentorForbidden(t *testing.T) {
	mentor := models.Actor{ID: "ACD00002", Role: models.RoleAcademic}
	app, store := newProjectTestApp(mentor)

	project, err := store.CreateProject(&models.Project{Name: "Tez", AcademicID: "ACD00001"})
	require.NoError(t, err)

	status := doJSON(t, app, "PUT", "/projects/"+project.ID+"/status", fiber.Map{"status": "active"})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAddComment(t *testing.T) {
	student := models.Actor{ID: "STU00001", Role: models.RoleStudent}
	app, store := newProjectTestApp(student)

	project, err := store.CreateProject(&models.Project{Name: "Tez", StudentID: "STU00001"})
	require.NoError(t, err)

	status := doJSON(t, app, "POST", "/projects/"+project.ID+"/comments", fiber.Map{"body": "İlk bölüm hazır"})
	assert.Equal(t, fiber.StatusCreated, status)

	comments, err := store.GetCommentsByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "STU00001", comments[0].AuthorID)
	assert.Equal(t, models.RoleStudent, comments[0].AuthorRole)

	status = doJSON(t, app, "POST", "/projects/"+project.ID+"/comments", fiber.Map{"body": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAddEvaluation_StudentsForbidden(t *testing.T) {
	student := models.Actor{ID: "STU00001", Role: models.RoleStudent}
	app, store := newProjectTestApp(student)

	project, err := store.CreateProject(&models.Project{Name: "Tez", StudentID: "STU00001"})
	require.NoError(t, err)

	status := doJSON(t, app, "POST", "/projects/"+project.ID+"/evaluations", fiber.Map{"score": 90})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAddEvaluation_ScoreBounds(t *testing.T) {
	mentor := models.Actor{ID: "ACD00001", Role: models.RoleAcademic}
	app, store := newProjectTestApp(mentor)

	project, err := store.CreateProject(&models.Project{Name: "Tez", AcademicID: "ACD00001"})
	require.NoError(t, err)

	status := doJSON(t, app, "POST", "/projects/"+project.ID+"/evaluations", fiber.Map{"score": 101})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = doJSON(t, app, "POST", "/projects/"+project.ID+"/evaluations", fiber.Map{"score": 85, "remarks": "İyi ilerleme"})
	assert.Equal(t, fiber.StatusCreated, status)

	evaluations, err := store.GetEvaluationsByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, evaluations, 1)
	assert.Equal(t, 85, evaluations[0].Score)
}
