package http

import (
	"context"
	"errors"
	"net/http"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Rules named in error responses.
const (
	RuleInvalidRequest        = "invalid_request"
	RuleInvalidValue          = "invalid_value"
	RuleNotFound              = "not_found"
	RuleInvalidBatch          = "invalid_batch"
	RuleUnknownCourier        = "unknown_courier"
	RuleConservationViolation = "conservation_violation"
	RuleAlreadyFinalized      = "already_finalized"
	RuleBatchNotFinalized     = "batch_not_finalized"
	RuleFinalizedBatchLocked  = "finalized_batch_locked"
	RuleUnavailable           = "unavailable"
	RuleInternal              = "internal_error"
)

// errorResponse maps a use case error to its status code and body. Domain sentinels are
// checked before the generic value errors they may wrap.
func errorResponse(err error) Error {
	var conservationErr *batch.ConservationError

	switch {
	case errors.As(err, &conservationErr):
		body := newError(http.StatusUnprocessableEntity, RuleConservationViolation, err)
		for _, im := range conservationErr.Imbalances {
			body.Imbalances = append(body.Imbalances, Imbalance{
				Category:  string(im.Category),
				Initial:   im.Initial,
				Accounted: im.Accounted,
			})
		}
		return body
	case errors.Is(err, courier.ErrUnknownCourier):
		body := newError(http.StatusUnprocessableEntity, RuleUnknownCourier, err)
		body.Fields = []string{"courierId"}
		return body
	case errors.Is(err, batch.ErrInvalidBatch):
		body := newError(http.StatusUnprocessableEntity, RuleInvalidBatch, err)
		body.Fields = fieldNames(err)
		return body
	case errors.Is(err, batch.ErrAlreadyFinalized):
		return newError(http.StatusConflict, RuleAlreadyFinalized, err)
	case errors.Is(err, batch.ErrBatchNotFinalized):
		return newError(http.StatusConflict, RuleBatchNotFinalized, err)
	case errors.Is(err, batch.ErrFinalizedBatchLocked):
		return newError(http.StatusConflict, RuleFinalizedBatchLocked, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return newError(http.StatusNotFound, RuleNotFound, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		body := newError(http.StatusBadRequest, RuleInvalidValue, err)
		body.Fields = fieldNames(err)
		return body
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return newError(http.StatusServiceUnavailable, RuleUnavailable, err)
	default:
		return Error{
			Code:    http.StatusInternalServerError,
			Rule:    RuleInternal,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

func newError(code int, rule string, err error) Error {
	return Error{Code: code, Rule: rule, Message: err.Error()}
}

// fieldNames collects the parameter names of every errs value error in the tree of err.
func fieldNames(err error) []string {
	var names []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case *errs.ValueIsRequiredError:
			names = append(names, v.ParamName)
		case *errs.ValueIsInvalidError:
			names = append(names, v.ParamName)
		case *errs.ValueIsOutOfRangeError:
			names = append(names, v.ParamName)
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return names
}

// writeError renders err as the JSON error body.
func writeError(c echo.Context, err error) error {
	body := errorResponse(err)
	if body.Code == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(body.Code, body)
}

// httpErrorHandler renders errors raised by echo itself, such as unknown routes and
// parameter binding failures, in the same body format.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		rule := RuleInvalidRequest
		switch he.Code {
		case http.StatusNotFound:
			rule = RuleNotFound
		case http.StatusInternalServerError:
			rule = RuleInternal
		}
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = c.JSON(he.Code, Error{Code: he.Code, Rule: rule, Message: message})
		return
	}

	_ = writeError(c, err)
}
