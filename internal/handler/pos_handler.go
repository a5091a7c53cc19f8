package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// POSHandler drives the sale terminal: the draft cart, checkout, and
// quotation creation.
type POSHandler struct {
	carts      service.CartService
	sales      service.SaleService
	quotations service.QuotationService
}

func NewPOSHandler(carts service.CartService, sales service.SaleService, quotations service.QuotationService) *POSHandler {
	return &POSHandler{carts: carts, sales: sales, quotations: quotations}
}

func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.carts.Get(getUserID(c)))
}

type cartLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

func (h *POSHandler) AddToCart(c *fiber.Ctx) error {
	var req cartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	cart, err := h.carts.AddLine(getUserID(c), productID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cart)
}

type cartQtyRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *POSHandler) ChangeQty(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var req cartQtyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.carts.SetLineQty(getUserID(c), productID, req.Delta)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cart)
}

type cartPriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

func (h *POSHandler) ChangePrice(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var req cartPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.carts.SetLinePrice(getUserID(c), productID, req.Price)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cart)
}

type cartMetaRequest struct {
	Serial   string `json:"serial"`
	Warranty string `json:"warranty"`
}

func (h *POSHandler) SetLineMeta(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var req cartMetaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.carts.SetLineMeta(getUserID(c), productID, req.Serial, req.Warranty)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cart)
}

func (h *POSHandler) RemoveFromCart(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	return c.JSON(h.carts.RemoveLine(getUserID(c), productID))
}

func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	h.carts.Clear(getUserID(c))
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

type cartTotalsRequest struct {
	DiscountValue float64            `json:"discount_value" validate:"gte=0"`
	DiscountType  model.DiscountType `json:"discount_type" validate:"required,oneof=percent fixed"`
}

func (h *POSHandler) CartTotals(c *fiber.Ctx) error {
	var req cartTotalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	return c.JSON(h.carts.Totals(getUserID(c), req.DiscountValue, req.DiscountType))
}

func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var req service.CompleteSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	invoice, err := h.sales.CompleteSale(getUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale completed", "data": invoice})
}

func (h *POSHandler) CreateQuotation(c *fiber.Ctx) error {
	var req service.CreateQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	quotation, err := h.quotations.CreateQuotation(getUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Quotation created", "data": quotation})
}
