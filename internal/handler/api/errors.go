package api

import (
	"context"
	"errors"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	"TradeLens/internal/services/backend"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// toAppError maps use-case errors to HTTP errors.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	var invalid *models.InvalidInputError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &invalid):
		return xhttp.InvalidFieldError(invalid.Field, invalid.Reason).WithError(err)
	case errors.Is(err, domrepo.ErrUnknownPreference):
		return xhttp.InvalidFieldError("key", err.Error()).WithError(err)
	case backend.IsNotFound(err):
		return xhttp.NotFoundError("resource not found").WithError(err)
	case errors.Is(err, context.Canceled):
		return xhttp.CanceledError().WithError(err)
	case isRejection(err):
		code, detail, _ := backend.Rejection(err)
		return xhttp.RejectedError(detail, code).WithError(err)
	case backend.IsUpstream(err):
		return xhttp.BadGatewayError("backend request failed").WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}

func isRejection(err error) bool {
	_, _, ok := backend.Rejection(err)
	return ok
}

// fail writes err in the envelope, logging server-side failures.
func fail(c echo.Context, log *xlogger.Logger, op string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= 500 {
		log.Error(op+" failed", xlogger.String("path", c.Path()), xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}
