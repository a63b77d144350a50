package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// InventoryHandler maneja items, alertas de vencimiento y búsqueda de productos.
type InventoryHandler struct {
	items  *inventory.ItemUseCase
	alerts *inventory.AlertUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemUseCase, alerts *inventory.AlertUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{items: items, alerts: alerts, log: log}
}

// Create godoc
// @Summary      Colocar un item en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "location_id, product_name, sku, arrival_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.items.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar item (parcial)
// @Description  Los campos ausentes no cambian; expiration_date e invoice_number aceptan null.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del item"
// @Param        body  body      dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retirar item
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Alerts godoc
// @Summary      Items vencidos o por vencer
// @Description  Ordenados por días restantes, el más urgente primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alerts.Alerts(c.Context())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// AlertsReport godoc
// @Summary      Reporte PDF de alertas
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/report [get]
func (h *InventoryHandler) AlertsReport(c *fiber.Ctx) error {
	doc, err := h.alerts.AlertsReport(c.Context())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="alertas-%s.pdf"`, GetWarehouseID(c)))
	return c.Send(doc)
}

// Stats godoc
// @Summary      Conteos de vencimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertStatsResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.alerts.AlertStats(c.Context())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por nombre o SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  false  "Texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.ProductMatchResponse]
// @Router       /api/inventory/search [get]
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	out, err := h.alerts.Search(c.Context(), c.Query("q"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}
