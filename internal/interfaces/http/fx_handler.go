package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/application/fxrates"
)

// FxHandler expone el registro append-only de tasas de cambio.
type FxHandler struct {
	uc *fxrates.FxUseCase
}

// NewFxHandler construye el handler de tasas.
func NewFxHandler(uc *fxrates.FxUseCase) *FxHandler {
	return &FxHandler{uc: uc}
}

// CreateRate godoc
// @Summary      Publicar una tasa de cambio
// @Description  Las tasas son append-only: una corrección se publica como fila
// @Description  nueva, los snapshots de ítems existentes no cambian.
// @Tags         fx
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFxRateRequest  true  "from_ccy, to_ccy, rate, as_of_date"
// @Success      201   {object}  dto.FxRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/fx/rates [post]
func (h *FxHandler) CreateRate(c *fiber.Ctx) error {
	var in dto.CreateFxRateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rate, err := h.uc.CreateRate(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fxrates.ToRateResponse(rate))
}

// ListRates godoc
// @Summary      Listar tasas publicadas
// @Tags         fx
// @Produce      json
// @Param        from_ccy   query  string  false  "moneda origen"
// @Param        to_ccy     query  string  false  "moneda destino"
// @Param        start_date query  string  false  "YYYY-MM-DD"
// @Param        end_date   query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.FxRateResponse
// @Security     BearerAuth
// @Router       /api/fx/rates [get]
func (h *FxHandler) ListRates(c *fiber.Ctx) error {
	var filters dto.FxRateFiltersRequest
	if err := c.QueryParser(&filters); err != nil {
		return badRequest(c, "filtros inválidos")
	}
	rates, err := h.uc.ListRates(c.Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.FxRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, fxrates.ToRateResponse(r))
	}
	return c.JSON(out)
}

// ListPairs godoc
// @Summary      Pares de monedas con tasas publicadas
// @Tags         fx
// @Produce      json
// @Success      200  {array}  dto.CurrencyPairResponse
// @Security     BearerAuth
// @Router       /api/fx/pairs [get]
func (h *FxHandler) ListPairs(c *fiber.Ctx) error {
	pairs, err := h.uc.ListPairs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CurrencyPairResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.CurrencyPairResponse{FromCcy: p.FromCcy, ToCcy: p.ToCcy})
	}
	return c.JSON(out)
}
