package api

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/usecase"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler serves the portfolio page, trades and agent advice.
type PortfolioHandler struct {
	logger    *xlogger.Logger
	portfolio *usecase.PortfolioUseCase
}

func NewPortfolioHandler(logger *xlogger.Logger, portfolio *usecase.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, portfolio: portfolio}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/portfolio", h.Portfolio)
	g.GET("/portfolio/optimization", h.Optimization)
	g.POST("/portfolio/transaction", h.Transaction)
	g.GET("/stocks/:symbol/analysis", h.Analysis)
}

func (h *PortfolioHandler) Portfolio(c echo.Context) error {
	view, err := h.portfolio.View(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "portfolio", err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *PortfolioHandler) Optimization(c echo.Context) error {
	req := &models.OptimizationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	advice, err := h.portfolio.Optimization(c.Request().Context(), req.Amount)
	if err != nil {
		return fail(c, h.logger, "optimization", err)
	}
	return xhttp.SuccessResponse(c, advice)
}

func (h *PortfolioHandler) Transaction(c echo.Context) error {
	req := &models.TransactionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tx, err := h.portfolio.Submit(c.Request().Context(), *req)
	if err != nil {
		return fail(c, h.logger, "transaction", err)
	}
	return xhttp.CreatedResponse(c, tx)
}

func (h *PortfolioHandler) Analysis(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	a, err := h.portfolio.Analysis(c.Request().Context(), req.Symbol)
	if err != nil {
		return fail(c, h.logger, "analysis", err)
	}
	return xhttp.SuccessResponse(c, a)
}
