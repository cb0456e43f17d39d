package api

import (
	"TradeLens/internal/domain/models"
	"TradeLens/internal/usecase"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the risk questionnaire and user preferences.
type ProfileHandler struct {
	logger *xlogger.Logger
	risk   *usecase.RiskUseCase
	prefs  *usecase.PreferenceUseCase
}

func NewProfileHandler(logger *xlogger.Logger, risk *usecase.RiskUseCase, prefs *usecase.PreferenceUseCase) *ProfileHandler {
	return &ProfileHandler{logger: logger, risk: risk, prefs: prefs}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/risk/questions", h.Questions)
	g.GET("/risk/profile", h.CurrentProfile)
	g.POST("/risk/profile", h.ScoreProfile)
	g.GET("/preferences", h.Preferences)
	g.GET("/preferences/:key", h.Preference)
	g.PUT("/preferences/:key", h.SetPreference)
}

func (h *ProfileHandler) Questions(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.risk.Questions())
}

func (h *ProfileHandler) CurrentProfile(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]models.RiskProfile{"profile": h.risk.Current(c.Request().Context())})
}

func (h *ProfileHandler) ScoreProfile(c echo.Context) error {
	req := &models.RiskProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.risk.Submit(c.Request().Context(), req.Answers)
	if err != nil {
		return fail(c, h.logger, "risk profile", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ProfileHandler) Preferences(c echo.Context) error {
	all, err := h.prefs.All(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, "preferences", err)
	}
	return xhttp.SuccessResponse(c, all)
}

func (h *ProfileHandler) Preference(c echo.Context) error {
	key := c.Param("key")
	v, err := h.prefs.Get(c.Request().Context(), key)
	if err != nil {
		return fail(c, h.logger, "preference", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"key": key, "value": v})
}

func (h *ProfileHandler) SetPreference(c echo.Context) error {
	req := &models.PreferenceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	v, err := h.prefs.Set(c.Request().Context(), req.Key, req.Value)
	if err != nil {
		return fail(c, h.logger, "set preference", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"key": req.Key, "value": v})
}
