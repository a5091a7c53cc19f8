package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AccountsHandler struct {
	service service.AccountsService
}

func NewAccountsHandler(s service.AccountsService) *AccountsHandler {
	return &AccountsHandler{service: s}
}

func (h *AccountsHandler) Receivables(c *fiber.Ctx) error {
	rows, err := h.service.Receivables()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

func (h *AccountsHandler) Payables(c *fiber.Ctx) error {
	rows, err := h.service.Payables()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

type recordPaymentRequest struct {
	Type     model.PaymentType `json:"type" validate:"required,oneof=customer supplier"`
	EntityID string            `json:"entity_id" validate:"required"`
	Amount   float64           `json:"amount" validate:"required,gt=0"`
	Note     string            `json:"note"`
}

func (h *AccountsHandler) RecordPayment(c *fiber.Ctx) error {
	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	payment, err := h.service.RecordPayment(req.Type, req.EntityID, req.Amount, req.Note, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Payment recorded", "data": payment})
}

func (h *AccountsHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	if err := h.service.DeletePayment(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment deleted"})
}

func (h *AccountsHandler) PaymentHistory(c *fiber.Ctx) error {
	t := model.PaymentType(c.Query("type", string(model.PaymentCustomer)))
	if t != model.PaymentCustomer && t != model.PaymentSupplier {
		return c.Status(400).JSON(fiber.Map{"error": "type must be customer or supplier"})
	}
	entityID := c.Params("entityId")

	entries, err := h.service.PaymentHistory(t, entityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (h *AccountsHandler) ListPayments(c *fiber.Ctx) error {
	t := model.PaymentType(c.Query("type", string(model.PaymentCustomer)))
	if t != model.PaymentCustomer && t != model.PaymentSupplier {
		return c.Status(400).JSON(fiber.Map{"error": "type must be customer or supplier"})
	}

	payments, err := h.service.ListPayments(t)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(payments)
}
