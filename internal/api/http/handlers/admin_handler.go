package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teekoob/admin-service/internal/api/dto"
	"github.com/teekoob/admin-service/internal/service"
	"github.com/teekoob/admin-service/pkg/util"
)

// AdminHandler exposes the admin-gated management endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := h.admin.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, dto.NewUserSummary(user))
	}
	return c.JSON(fiber.Map{"users": summaries})
}

// SetUserActive handles PATCH /admin/users/:id/active.
func (h *AdminHandler) SetUserActive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return util.NewValidationError("user id required", nil)
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.admin.SetUserActive(c.UserContext(), id, req.Active); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListBooks handles GET /admin/books.
func (h *AdminHandler) ListBooks(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	books, err := h.admin.ListBooks(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	summaries := make([]dto.BookSummary, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, dto.NewBookSummary(book))
	}
	return c.JSON(fiber.Map{"books": summaries})
}

// GetBook handles GET /admin/books/:id.
func (h *AdminHandler) GetBook(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return util.NewValidationError("book id required", nil)
	}

	book, err := h.admin.GetBook(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"book": dto.NewBookSummary(*book)})
}
