package handler

import (
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

type addStockRequest struct {
	Qty int `json:"qty" validate:"required,gt=0"`
}

func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req addStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	product, err := h.service.AddStock(id, req.Qty, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock added", "data": product})
}

func (h *StockHandler) ListPurchases(c *fiber.Ctx) error {
	if supplier := c.Query("supplier_id"); supplier != "" {
		supplierID, err := parseUUID(supplier)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
		}
		purchases, err := h.service.ListBySupplier(supplierID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(purchases)
	}

	purchases, err := h.service.ListPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(purchases)
}

func (h *StockHandler) RecordPurchase(c *fiber.Ctx) error {
	var req service.RecordPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	purchase, err := h.service.RecordPurchase(req, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

func (h *StockHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	if err := h.service.DeletePurchase(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase record deleted"})
}
