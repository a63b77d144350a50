package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/usecase"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// LocationHandler maneja la vista de bodega: ubicaciones, ocupación y bitácora.
type LocationHandler struct {
	uc  *usecase.LocationUseCase
	log *logger.Logger
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase, log *logger.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar ubicaciones con su item y estado de vencimiento
// @Description  Una fila por par (ubicación, item); una ubicación vacía aparece una vez con alert_status EMPTY.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        zona      query  string  false  "Filtrar por zona"
// @Param        pasillo   query  string  false  "Filtrar por pasillo"
// @Param        occupied  query  bool    false  "true = solo ocupadas, false = solo vacías"
// @Success      200  {array}   dto.LocationSlotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	q := dto.LocationQuery{
		Zona:    strings.TrimSpace(c.Query("zona")),
		Pasillo: strings.TrimSpace(c.Query("pasillo")),
	}
	if raw := c.Query("occupied"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "occupied debe ser true o false"})
		}
		q.Occupied = &b
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// SearchBySKU godoc
// @Summary      Ubicaciones que contienen un SKU
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        sku  path      string  true  "SKU exacto"
// @Success      200  {array}   dto.LocationSlotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/search/{sku} [get]
func (h *LocationHandler) SearchBySKU(c *fiber.Ctx) error {
	out, err := h.uc.SearchBySKU(c.Context(), c.Params("sku"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// Occupancy godoc
// @Summary      Estadísticas de ocupación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OccupancyStatsResponse
// @Router       /api/locations/stats/occupancy [get]
func (h *LocationHandler) Occupancy(c *fiber.Ctx) error {
	out, err := h.uc.Occupancy(c.Context())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}

// RecentActivity godoc
// @Summary      Actividad reciente
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas (por defecto 10, tope 100)"
// @Success      200  {array}   dto.ActivityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/activity/recent [get]
func (h *LocationHandler) RecentActivity(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit debe ser un entero positivo"})
		}
		limit = n
	}
	out, err := h.uc.RecentActivity(c.Context(), limit)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}
