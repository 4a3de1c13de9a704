package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/currency"
	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// SettingsHandler handles user settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateCurrencyRequest represents the request payload for changing the currency
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// UserSettingsResponse represents user settings in the response
type UserSettingsResponse struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

// GetUserSettings handles the retrieval of the user's settings
// @Summary     Get user settings
// @Description Get the authenticated user's settings, creating them with the default currency on first access
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserSettingsResponse "User settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user-settings [get]
func (h *SettingsHandler) GetUserSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.GetUserSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateUserCurrency handles changing the user's preferred currency
// @Summary     Update currency
// @Description Set the authenticated user's preferred currency
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateCurrencyRequest true "New currency"
// @Success     200 {object} UserSettingsResponse "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid or unsupported currency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user-settings [put]
func (h *SettingsHandler) UpdateUserCurrency(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateUserCurrency(userID, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetCurrencies handles the list of supported currencies
// @Summary     List currencies
// @Description Get the currencies available for user settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} currency.Currency "Supported currencies"
// @Router      /currencies [get]
func (h *SettingsHandler) GetCurrencies(c *gin.Context) {
	_, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currency.Supported})
}
