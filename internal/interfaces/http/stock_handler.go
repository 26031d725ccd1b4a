package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/application/stock"
)

// StockHandler handles stock mutations and ledger history for a product.
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Mutate godoc
// @Summary      Apply a stock mutation (inbound, outbound, adjustment, return)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Product ID"
// @Param        body  body  dto.StockMutationRequest  true  "Mutation data"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *StockHandler) Mutate(c *fiber.Ctx) error {
	var in dto.StockMutationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ApplyMutation(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Get a product's stock ledger, newest first
// @Tags         stock
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        limit   query  int     false  "Page size"  default(50)
// @Param        offset  query  int     false  "Offset"     default(0)
// @Success      200  {object}  dto.LedgerHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/ledger [get]
func (h *StockHandler) Ledger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	out, err := h.uc.GetLedger(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
