package handler

import (
	"fmt"
	"time"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BackupHandler struct {
	service service.BackupService
}

func NewBackupHandler(s service.BackupService) *BackupHandler {
	return &BackupHandler{service: s}
}

// Export streams the full backup as a downloadable JSON document.
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	payload, err := h.service.Export()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Export failed"})
	}

	filename := fmt.Sprintf("pos-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.JSON(payload)
}

// Import replaces the entire database with the uploaded payload.
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	var payload service.BackupPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid backup file"})
	}

	if err := h.service.Import(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Import failed: " + err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Backup restored"})
}
