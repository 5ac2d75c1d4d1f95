package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/projetakip/projetakip-backend/internal/middleware"
	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// MeetingHandler handles advisory meeting requests
type MeetingHandler struct {
	meetings *services.MeetingService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetings *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

type meetingRequest struct {
	ProjectID  string    `json:"project_id"`
	StudentID  string    `json:"student_id"`
	AcademicID string    `json:"academic_id"`
	Title      string    `json:"title"`
	Time       time.Time `json:"time"`
	Type       string    `json:"type"`
	Notes      string    `json:"notes"`
}

func (r meetingRequest) toInput() services.MeetingInput {
	return services.MeetingInput{
		ProjectID:  r.ProjectID,
		StudentID:  r.StudentID,
		AcademicID: r.AcademicID,
		Title:      r.Title,
		Time:       r.Time,
		Type:       models.MeetingType(r.Type),
		Notes:      r.Notes,
	}
}

// meetingError maps negotiation errors onto HTTP statuses
func meetingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Meeting not found"})
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized for this meeting"})
	case errors.Is(err, services.ErrOutOfTurn):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot perform this action now"})
	case errors.Is(err, services.ErrMeetingLocked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Meeting is not open for changes"})
	case errors.Is(err, services.ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Decision must be approve or reject"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Meeting operation failed"})
	}
}

// CreateMeeting creates a meeting through the direct form path
func (h *MeetingHandler) CreateMeeting(c *fiber.Ctx) error {
	var req meetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ProjectID == "" || req.Title == "" || req.Time.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Project ID, title and time are required",
		})
	}

	actor := middleware.ActorFrom(c)
	input := req.toInput()
	// Students and academics are always one of the meeting's parties
	switch actor.Role {
	case models.RoleStudent:
		input.StudentID = actor.ID
	case models.RoleAcademic:
		input.AcademicID = actor.ID
	}

	meeting, err := h.meetings.Create(actor, input)
	if err != nil {
		return meetingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"meeting": meeting})
}

// ListMeetings returns the meetings the caller can access, grouped by
// time bucket
func (h *MeetingHandler) ListMeetings(c *fiber.Ctx) error {
	meetings, err := h.meetings.ListFor(middleware.ActorFrom(c))
	if err != nil {
		return meetingError(c, err)
	}
	return c.JSON(fiber.Map{
		"meetings": meetings,
		"count":    len(meetings),
	})
}

// GetMeeting returns one meeting by ID
func (h *MeetingHandler) GetMeeting(c *fiber.Ctx) error {
	meeting, err := h.meetings.Get(middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return meetingError(c, err)
	}
	return c.JSON(fiber.Map{"meeting": meeting})
}

// DecideMeeting applies an approve/reject answer from one party
func (h *MeetingHandler) DecideMeeting(c *fiber.Ctx) error {
	var req struct {
		Decision string `json:"decision"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	meeting, err := h.meetings.Decide(middleware.ActorFrom(c), c.Params("id"), models.Decision(req.Decision))
	if err != nil {
		return meetingError(c, err)
	}
	return c.JSON(fiber.Map{"meeting": meeting})
}

// UpdateMeeting edits a pending meeting and restarts the negotiation
func (h *MeetingHandler) UpdateMeeting(c *fiber.Ctx) error {
	var req meetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	meeting, err := h.meetings.Edit(middleware.ActorFrom(c), c.Params("id"), req.toInput())
	if err != nil {
		return meetingError(c, err)
	}
	return c.JSON(fiber.Map{"meeting": meeting})
}

// DeleteMeeting hard-removes a meeting the caller can access
func (h *MeetingHandler) DeleteMeeting(c *fiber.Ctx) error {
	if err := h.meetings.Delete(middleware.ActorFrom(c), c.Params("id")); err != nil {
		return meetingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
