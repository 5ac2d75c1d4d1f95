package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/projetakip/projetakip-backend/internal/middleware"
	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// ProjectHandler serves project reads plus their comments and evaluations
type ProjectHandler struct {
	store    storage.Store
	notifier services.Notifier
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(store storage.Store, notifier services.Notifier) *ProjectHandler {
	return &ProjectHandler{store: store, notifier: notifier}
}

// ListProjects returns the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)

	var projects []*models.Project
	var err error
	switch actor.Role {
	case models.RoleStudent:
		projects, err = h.store.GetProjectsByStudent(actor.ID)
	case models.RoleAcademic:
		projects, err = h.store.GetProjectsByMentor(actor.ID)
	default:
		projects, err = h.store.GetAllProjects()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch projects"})
	}
	return c.JSON(fiber.Map{"projects": projects, "count": len(projects)})
}

// GetProject returns one project with its comments and evaluations
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.store.GetProject(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch project"})
	}

	comments, _ := h.store.GetCommentsByProject(project.ID)
	evaluations, _ := h.store.GetEvaluationsByProject(project.ID)
	return c.JSON(fiber.Map{
		"project":     project,
		"comments":    comments,
		"evaluations": evaluations,
	})
}

// UpdateProjectStatus moves a project through its lifecycle. Completing a
// stage fires its notification trigger.
func (h *ProjectHandler) UpdateProjectStatus(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.Role != models.RoleAcademic && actor.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only academics can change project status"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status := models.ProjectStatus(req.Status)
	switch status {
	case models.ProjectStatusPending, models.ProjectStatusActive, models.ProjectStatusCompleted:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown project status"})
	}

	project, err := h.store.GetProject(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	if actor.Role == models.RoleAcademic && project.AcademicID != actor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the project's mentor can change its status"})
	}

	prior := project.Status
	project.Status = status
	if err := h.store.UpdateProject(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update project"})
	}

	if status == models.ProjectStatusCompleted && prior != models.ProjectStatusCompleted {
		h.notifier.Notify(services.EventProjectStageCompleted, project)
	}
	return c.JSON(fiber.Map{"project": project})
}

// AddComment appends a comment to a project
func (h *ProjectHandler) AddComment(c *fiber.Ctx) error {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Comment body is required"})
	}

	project, err := h.store.GetProject(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	actor := middleware.ActorFrom(c)
	comment, err := h.store.CreateComment(&models.Comment{
		ProjectID:  project.ID,
		AuthorID:   actor.ID,
		AuthorRole: actor.Role,
		Body:       req.Body,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add comment"})
	}

	h.notifier.Notify(services.EventCommentAdded, comment)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// AddEvaluation records a mentor's evaluation of a project
func (h *ProjectHandler) AddEvaluation(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.Role != models.RoleAcademic && actor.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only academics can evaluate projects"})
	}

	var req struct {
		Score   int    `json:"score"`
		Remarks string `json:"remarks"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Score < 0 || req.Score > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Score must be between 0 and 100"})
	}

	project, err := h.store.GetProject(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	if actor.Role == models.RoleAcademic && project.AcademicID != actor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the project's mentor can evaluate it"})
	}

	evaluation, err := h.store.CreateEvaluation(&models.Evaluation{
		ProjectID:  project.ID,
		AcademicID: actor.ID,
		Score:      req.Score,
		Remarks:    req.Remarks,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add evaluation"})
	}

	h.notifier.Notify(services.EventEvaluationAdded, evaluation)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"evaluation": evaluation})
}
