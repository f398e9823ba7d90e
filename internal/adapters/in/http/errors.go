package http

import (
	"errors"
	"net/http"

	"mediflow/internal/adapters/out/auth"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps the core error taxonomy to HTTP status codes.
//
//	not found                   -> 404
//	unauthorized / wrong role   -> 401
//	lost race, invalid state,
//	already paid                -> 409
//	settlement declined         -> 402
//	validation                  -> 400
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrAlreadyPaid),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrNotClaimant),
		errors.Is(err, auth.ErrEmailAlreadyRegistered):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrExternalFailure):
		code = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
