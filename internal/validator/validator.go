// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"campfire/internal/models"
)

// maxWalletLength bounds wallet identifiers. Addresses on supported chains
// are far shorter; the limit only rejects garbage.
const maxWalletLength = 128

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("listing_action", validateListingAction)
		_ = v.RegisterValidation("listing_status", validateListingStatus)
		_ = v.RegisterValidation("wallet", validateWallet)
	}
}

// IsListingAction reports whether action names a listing lifecycle action.
func IsListingAction(action string) bool {
	switch action {
	case "create", "cancel", "purchase", "release", "payment-submitted", "complete":
		return true
	}
	return false
}

func validateListingAction(fl validator.FieldLevel) bool {
	return IsListingAction(fl.Field().String())
}

func validateListingStatus(fl validator.FieldLevel) bool {
	return models.ListingStatus(fl.Field().String()).IsValid()
}

// validateWallet accepts any opaque identifier without inner whitespace.
// Surrounding whitespace is tolerated and stripped during normalization.
func validateWallet(fl validator.FieldLevel) bool {
	w := strings.TrimSpace(fl.Field().String())
	if w == "" || len(w) > maxWalletLength {
		return false
	}
	return strings.IndexFunc(w, unicode.IsSpace) < 0
}
