package handler

import (
	"go-caixa-pos/internal/middleware"
	"go-caixa-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	cart     service.CartService
	checkout service.CheckoutService
}

func NewCartHandler(cart service.CartService, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.cart.Get(middleware.Operator(c))})
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id is required"})
	}

	view, changed, err := h.cart.Add(c.UserContext(), middleware.Operator(c), req.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"applied": changed, "data": view})
}

// PUT /api/v1/cart/items/:id
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, changed, err := h.cart.SetQuantity(c.UserContext(), middleware.Operator(c), c.Params("id"), req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"applied": changed, "data": view})
}

// DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	view, changed := h.cart.Remove(middleware.Operator(c), c.Params("id"))
	return c.JSON(fiber.Map{"applied": changed, "data": view})
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	op := middleware.Operator(c)
	h.cart.Clear(op)
	return c.JSON(fiber.Map{"data": h.cart.Get(op)})
}

// POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	sale, err := h.checkout.Checkout(c.UserContext(), middleware.Operator(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale finalized", "data": sale})
}
