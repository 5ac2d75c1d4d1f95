package handlers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/projetakip/projetakip-backend/internal/middleware"
	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

var categoryColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryHandler handles project category management
type CategoryHandler struct {
	store storage.Store
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(store storage.Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func requireCategoryRole(c *fiber.Ctx) (models.Actor, bool) {
	actor := middleware.ActorFrom(c)
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleAcademic {
		return actor, false
	}
	return actor, true
}

// ListCategories returns every category
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.GetAllCategories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(fiber.Map{"categories": categories, "count": len(categories)})
}

// CreateCategory creates a category (admin and academic only)
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	if _, ok := requireCategoryRole(c); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No permission to manage categories"})
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if req.Color == "" {
		req.Color = models.DefaultCategoryColor
	}
	if !categoryColorPattern.MatchString(req.Color) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Color must be in #RRGGBB form"})
	}

	category, err := h.store.CreateCategory(&models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// UpdateCategory edits a category's description or color
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	if _, ok := requireCategoryRole(c); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No permission to manage categories"})
	}

	category, err := h.store.GetCategory(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req struct {
		Description *string `json:"description"`
		Color       *string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		if !categoryColorPattern.MatchString(*req.Color) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Color must be in #RRGGBB form"})
		}
		category.Color = *req.Color
	}

	if err := h.store.UpdateCategory(category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update category"})
	}
	return c.JSON(fiber.Map{"category": category})
}

// DeleteCategory removes a category. Categories still referenced by
// projects require a transfer target; every referencing project is moved
// there before the delete.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	if _, ok := requireCategoryRole(c); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No permission to manage categories"})
	}

	id := c.Params("id")
	if _, err := h.store.GetCategory(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	count, err := h.store.CountProjectsByCategory(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check category usage"})
	}

	if count > 0 {
		transferTo := c.Query("transfer_to")
		if transferTo == "" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":    "Category is in use; provide transfer_to to move its projects",
				"projects": count,
			})
		}
		if transferTo == id {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot transfer projects to the category being deleted"})
		}
		if _, err := h.store.GetCategory(transferTo); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transfer target category not found"})
		}
		if err := h.store.ReassignProjectsCategory(id, transferTo); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to transfer projects"})
		}
	}

	if err := h.store.DeleteCategory(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete category"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
