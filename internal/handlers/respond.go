package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/middleware"
)

// respondOK writes the success envelope with a 200.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// respondCreated writes the success envelope with a 201.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// respondBindingError translates a gin binding failure into the 400 envelope.
// Validator failures carry one entry per offending field; anything else (bad
// JSON, wrong types) gets a generic message.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = dto.FieldError{Field: fe.Field(), Message: validationMessage(fe)}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
}

// validationMessage renders one validator tag as a client-facing message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "numeric":
		return "must contain only digits"
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}

// respondError classifies a service error into the error envelope. Sentinels
// map to their documented status codes; anything unrecognized is a 500, logged
// in full and reduced to a generic message in release mode.
func respondError(c *gin.Context, err error) {
	var locked *apperrors.LockedError
	if errors.As(err, &locked) {
		c.JSON(http.StatusLocked, gin.H{
			"success":           false,
			"message":           "account temporarily locked after repeated failures",
			"retryAfterMinutes": locked.RetryAfterMinutes(),
		})
		return
	}

	var balance *apperrors.InsufficientBalanceError
	if errors.As(err, &balance) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"message":          "insufficient provision balance",
			"availableBalance": balance.Available,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"success": false, "message": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		// Correct password, pending verification. The flag tells the client
		// to route to the code-entry screen instead of showing a failure.
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":           false,
			"message":           "email not verified",
			"needsVerification": true,
		})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrCodeInvalid),
		errors.Is(err, apperrors.ErrCodeExpired),
		errors.Is(err, apperrors.ErrCannotDeletePaid),
		errors.Is(err, apperrors.ErrUnknownCurrency),
		errors.Is(err, apperrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
	case errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		// One message for absent and for cross-tenant, so existence never leaks.
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "resource not found"})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrAlreadyVerified),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrShipmentClosed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrAssistantUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "assistant is not available"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
		message := "internal server error"
		if gin.Mode() != gin.ReleaseMode {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
	}
}

// normalizePage clamps paging inputs the same way the services do, so the
// pagination meta reflects the page actually served.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// identityFrom pulls the authenticated identity set by the auth middleware.
// A miss means the route was wired without the guard; respond 401 and abort.
func identityFrom(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Identity missing from context on protected route")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
	}
	return identity, ok
}
