package handler

import (
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	service service.ExpenseService
}

func NewExpenseHandler(s service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: s}
}

func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}

	expenses, err := h.service.ListExpenses(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(expenses)
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	expense, err := h.service.RecordExpense(req, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Expense recorded", "data": expense})
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if err := h.service.DeleteExpense(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}
