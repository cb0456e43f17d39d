package api

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/usecase"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler serves stock lists, charts and market sentiment.
type MarketHandler struct {
	logger *xlogger.Logger
	market *usecase.MarketUseCase
	chart  *usecase.ChartUseCase
}

func NewMarketHandler(logger *xlogger.Logger, market *usecase.MarketUseCase, chart *usecase.ChartUseCase) *MarketHandler {
	return &MarketHandler{logger: logger, market: market, chart: chart}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stocks", h.Stocks)
	g.GET("/stocks/:symbol/chart", h.Chart)
	g.GET("/stocks/:symbol/sentiment", h.Sentiment)
	g.GET("/market/mood", h.Mood)
	g.GET("/market/summary", h.Summary)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/anomalies", h.Anomalies)
}

func (h *MarketHandler) Stocks(c echo.Context) error {
	list, err := h.market.Stocks(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "stocks", err)
	}
	return xhttp.ListResponse(c, list, int64(len(list)))
}

func (h *MarketHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	view, err := h.chart.Chart(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		return fail(c, h.logger, "chart", err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *MarketHandler) Sentiment(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	s, err := h.market.StockSentiment(c.Request().Context(), req.Symbol)
	if err != nil {
		return fail(c, h.logger, "sentiment", err)
	}
	return xhttp.SuccessResponse(c, s)
}

func (h *MarketHandler) Mood(c echo.Context) error {
	mood, err := h.market.Mood(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "market mood", err)
	}
	return xhttp.SuccessResponse(c, mood)
}

func (h *MarketHandler) Summary(c echo.Context) error {
	s, err := h.market.Summary(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "market summary", err)
	}
	return xhttp.SuccessResponse(c, s)
}

// Dashboard always answers 200; each panel reports its own state.
func (h *MarketHandler) Dashboard(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.market.Dashboard(c.Request().Context()))
}

func (h *MarketHandler) Anomalies(c echo.Context) error {
	list, err := h.market.Anomalies(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "anomalies", err)
	}
	return xhttp.ListResponse(c, list, int64(len(list)))
}
