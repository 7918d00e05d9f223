package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type SettingsHandler struct {
	base
}

func NewSettingsHandler(st *store.Store, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{base: newBase(st, logger, "settings_handler")}
}

// @Summary Get store settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /settings/store [get]
func (h *SettingsHandler) GetStoreSettings(c *gin.Context) {
	ok(c, h.store.StoreSettings())
}

// @Summary Update store settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.UpdateStoreSettingsRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /settings/store [put]
func (h *SettingsHandler) UpdateStoreSettings(c *gin.Context) {
	var req models.UpdateStoreSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.store.UpdateStoreSettings(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, settings)
}

// GetPaymentSettings returns payment settings with provider secrets masked
// @Summary Get payment settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /settings/payment [get]
func (h *SettingsHandler) GetPaymentSettings(c *gin.Context) {
	ok(c, h.store.PaymentSettings().Redacted())
}

// @Summary Update payment settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.UpdatePaymentSettingsRequest true "Fields to change"
// @Success 200 {object} models.SuccessResponse
// @Router /settings/payment [put]
func (h *SettingsHandler) UpdatePaymentSettings(c *gin.Context) {
	var req models.UpdatePaymentSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.store.UpdatePaymentSettings(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, settings.Redacted())
}
