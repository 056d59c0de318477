package handler

import (
	"bytes"

	"go-caixa-pos/internal/middleware"
	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CaixaHandler struct {
	caixa   service.CaixaService
	reports service.ReportService
}

func NewCaixaHandler(caixa service.CaixaService, reports service.ReportService) *CaixaHandler {
	return &CaixaHandler{caixa: caixa, reports: reports}
}

type OpenRequest struct {
	Amount model.Amount `json:"amount"`
	Note   string       `json:"note"`
}

type MovementRequest struct {
	Kind   string       `json:"kind"`
	Amount model.Amount `json:"amount"`
	Note   string       `json:"note"`
}

type CloseRequest struct {
	Counted model.Amount `json:"counted"`
}

// CaixaView is the cash drawer page: the active session plus its totals.
type CaixaView struct {
	Open             bool            `json:"open"`
	Session          *model.Session  `json:"session"`
	OpeningAmount    decimal.Decimal `json:"opening_amount"`
	Balance          decimal.Decimal `json:"balance"`
	SessionSales     decimal.Decimal `json:"session_sales"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TodaySales       decimal.Decimal `json:"today_sales"`
	TodaySaleCount   int             `json:"today_sale_count"`
}

func (h *CaixaHandler) view(c *fiber.Ctx) (*CaixaView, error) {
	todayTotal, todayCount, err := h.reports.TodaySales(c.UserContext())
	if err != nil {
		return nil, err
	}
	session := h.caixa.Active()
	v := &CaixaView{
		Open:             session.IsOpen(),
		Session:          session,
		OpeningAmount:    decimal.Zero,
		Balance:          session.Balance(),
		SessionSales:     session.TotalFor(model.MovementSale),
		TotalWithdrawals: session.TotalFor(model.MovementWithdrawal),
		TotalDeposits:    session.TotalFor(model.MovementDeposit),
		TodaySales:       todayTotal,
		TodaySaleCount:   todayCount,
	}
	if session != nil {
		v.OpeningAmount = session.OpeningAmount
	}
	return v, nil
}

func (h *CaixaHandler) respond(c *fiber.Ctx, applied bool, extra fiber.Map) error {
	v, err := h.view(c)
	if err != nil {
		return fail(c, err)
	}
	body := fiber.Map{"applied": applied, "data": v}
	for k, val := range extra {
		body[k] = val
	}
	return c.JSON(body)
}

// bindOptional decodes a JSON body that may be missing entirely. An empty
// body leaves req at its zero value, whatever the Content-Type.
func bindOptional(c *fiber.Ctx, req interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, req)
}

// GET /api/v1/caixa
func (h *CaixaHandler) GetCaixa(c *fiber.Ctx) error {
	v, err := h.view(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": v})
}

// POST /api/v1/caixa/open
func (h *CaixaHandler) Open(c *fiber.Ctx) error {
	var req OpenRequest
	if err := bindOptional(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	applied, err := h.caixa.Open(c.UserContext(), req.Amount.Decimal, req.Note, middleware.Operator(c))
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, applied, nil)
}

// POST /api/v1/caixa/movements
func (h *CaixaHandler) RecordMovement(c *fiber.Ctx) error {
	var req MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	kind := model.MovementKind(req.Kind)
	if !kind.Manual() {
		return c.Status(400).JSON(fiber.Map{"error": "kind must be 'withdrawal' or 'deposit'"})
	}

	applied, err := h.caixa.RecordMovement(c.UserContext(), kind, req.Amount.Decimal, req.Note, middleware.Operator(c))
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, applied, nil)
}

// POST /api/v1/caixa/close
func (h *CaixaHandler) Close(c *fiber.Ctx) error {
	var req CloseRequest
	if err := bindOptional(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	applied, err := h.caixa.Close(c.UserContext(), req.Counted.Decimal, middleware.Operator(c))
	if err != nil {
		return fail(c, err)
	}

	extra := fiber.Map{}
	if applied {
		if last := h.caixa.HistorySummaries(1); len(last) == 1 {
			extra["session"] = last[0]
		}
	}
	return h.respond(c, applied, extra)
}

// GET /api/v1/caixa/history?limit=10
func (h *CaixaHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultHistorySize)
	return c.JSON(fiber.Map{"data": h.caixa.HistorySummaries(limit)})
}
