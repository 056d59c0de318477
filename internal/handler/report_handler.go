package handler

import (
	"encoding/json"
	"fmt"

	"go-caixa-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GET /api/v1/sales
func (h *ReportHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.Sales(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": sales})
}

// GET /api/v1/reports/summary?top=5&days=7
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	ctx := c.UserContext()
	top := c.QueryInt("top", service.TopProductsLimit)
	days := c.QueryInt("days", service.ReportDays)
	if days <= 0 || days > 366 {
		return c.Status(400).JSON(fiber.Map{"error": "days must be between 1 and 366"})
	}

	summary, err := h.service.Summary(ctx)
	if err != nil {
		return fail(c, err)
	}
	topProducts, err := h.service.TopProducts(ctx, top)
	if err != nil {
		return fail(c, err)
	}
	lastDays, err := h.service.LastDays(ctx, days)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"summary":      summary,
		"top_products": topProducts,
		"last_days":    lastDays,
	})
}

// GET /api/v1/reports/export
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	snapshot, err := h.service.Export(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fail(c, err)
	}

	c.Attachment(fmt.Sprintf("report-%s.json", snapshot.GeneratedAt.Format("2006-01-02")))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GET /api/v1/dashboard
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	dash, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": dash})
}
