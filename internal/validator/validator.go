// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("investment_status", validateInvestmentStatus)
		_ = v.RegisterValidation("risk_level", validateRiskLevel)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "stocks", "bonds", "crypto", "real_estate", "commodities", "other":
		return true
	}
	return false
}

func validateInvestmentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "sold", "pending":
		return true
	}
	return false
}

func validateRiskLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "subscriber", "admin":
		return true
	}
	return false
}
