package handler

import (
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	sales      service.SaleService
	quotations service.QuotationService
}

func NewInvoiceHandler(sales service.SaleService, quotations service.QuotationService) *InvoiceHandler {
	return &InvoiceHandler{sales: sales, quotations: quotations}
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}
	filter := repository.InvoiceFilter{
		Search: c.Query("search"),
		From:   from,
		To:     to,
	}

	invoices, err := h.sales.ListInvoices(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(invoices)
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	invoice, err := h.sales.GetInvoice(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(invoice)
}

func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var req service.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	invoice, err := h.sales.UpdateInvoice(id, req, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice updated", "data": invoice})
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	if err := h.sales.DeleteInvoice(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice deleted, stock restored"})
}

func (h *InvoiceHandler) ListQuotations(c *fiber.Ctx) error {
	quotations, err := h.quotations.ListQuotations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(quotations)
}

func (h *InvoiceHandler) GetQuotation(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quotation ID"})
	}

	quotation, err := h.quotations.GetQuotation(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(quotation)
}

func (h *InvoiceHandler) DeleteQuotation(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quotation ID"})
	}

	if err := h.quotations.DeleteQuotation(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Quotation deleted"})
}
