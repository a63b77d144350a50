package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// SetupHandler reconfiguración de la estructura física.
type SetupHandler struct {
	uc  *setup.ResetUseCase
	log *logger.Logger
}

// NewSetupHandler construye el handler.
func NewSetupHandler(uc *setup.ResetUseCase, log *logger.Logger) *SetupHandler {
	return &SetupHandler{uc: uc, log: log}
}

// Initialize godoc
// @Summary      Regenerar la estructura de la bodega
// @Description  Con inventario presente responde 409 salvo force_reset=true, que archiva y borra el inventario.
// @Tags         setup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InitializeWarehouseRequest  true  "Forma de la bodega"
// @Success      201   {object}  dto.InitializeWarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ResetBlockedResponse
// @Router       /api/setup/initialize [post]
func (h *SetupHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitializeWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Initialize(c.Context(), in)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Int("total_locations", out.TotalLocations).Msg("bodega reconfigurada")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CurrentConfig godoc
// @Summary      Estructura vigente
// @Tags         setup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CurrentConfigResponse
// @Router       /api/setup/config [get]
func (h *SetupHandler) CurrentConfig(c *fiber.Ctx) error {
	out, err := h.uc.CurrentConfig(c.Context())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(out)
}
