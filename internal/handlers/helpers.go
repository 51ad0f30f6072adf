package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "campfire/internal/errors"
	"campfire/internal/logger"
	"campfire/internal/middleware"
	"campfire/internal/wallet"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// actingWallet resolves the wallet a request acts for. When the request
// carries a verified wallet token, the body wallet must match it (or be
// omitted, in which case the token's wallet is used). Without a token the
// body wallet is required.
func actingWallet(c *gin.Context, field, claimed string) (string, error) {
	claimed = wallet.Normalize(claimed)

	authed := c.GetString(middleware.WalletKey)
	if authed == "" {
		if claimed == "" {
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
		}
		return claimed, nil
	}

	if claimed != "" && claimed != authed {
		return "", apperrors.WithMessage(apperrors.ErrForbidden, field+" does not match the authenticated wallet")
	}
	return authed, nil
}

// bindingError turns a gin binding failure into an InvalidInput AppError
// naming the first offending field.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "listing_action":
			return apperrors.ErrUnknownAction
		case "listing_status":
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
		case "wallet":
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid wallet in %s", fe.Field()))
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid value for %s", fe.Field()))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request body")
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, middleware.ErrorBody(appErr))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, middleware.ErrorBody(apperrors.ErrInternalServer))
}
