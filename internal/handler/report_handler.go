package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(dashboard)
}

func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}

	report, err := h.service.SalesReport(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	report, err := h.service.StockReport()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}

func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}

	report, err := h.service.ProfitReport(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(report)
}
