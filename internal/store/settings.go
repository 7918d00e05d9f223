package store

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

const (
	entityStoreSettings   = "store_settings"
	entityPaymentSettings = "payment_settings"
)

// UpdateStoreSettingsCommand patches the store settings singleton.
// Existing orders are not recomputed.
type UpdateStoreSettingsCommand struct {
	Patch models.UpdateStoreSettingsRequest
}

func (c *UpdateStoreSettingsCommand) Name() string { return "UpdateStoreSettings" }

func (c *UpdateStoreSettingsCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	s := tx.state.StoreSettings.Clone()
	setIf(&s.StoreName, patch.StoreName)
	setIf(&s.StoreDescription, patch.StoreDescription)
	setIf(&s.StoreEmail, patch.StoreEmail)
	setIf(&s.StorePhone, patch.StorePhone)
	setIf(&s.WeightUnit, patch.WeightUnit)
	setIf(&s.Timezone, patch.Timezone)
	setIf(&s.EnableInventoryTracking, patch.EnableInventoryTracking)
	setIf(&s.EnableTaxes, patch.EnableTaxes)
	setIf(&s.TaxRate, patch.TaxRate)
	setIf(&s.EnableShipping, patch.EnableShipping)
	setIf(&s.FlatShippingRate, patch.FlatShippingRate)
	setIf(&s.EnableReviews, patch.EnableReviews)
	setIf(&s.EnableWishlist, patch.EnableWishlist)
	setIf(&s.EnableCompareProducts, patch.EnableCompareProducts)
	setIf(&s.EnableGuestCheckout, patch.EnableGuestCheckout)
	setIf(&s.RequirePhoneNumber, patch.RequirePhoneNumber)
	if patch.Currency != nil {
		s.Currency = strings.ToUpper(*patch.Currency)
	}
	if patch.OrderIDFormat != nil {
		s.OrderIDFormat = strings.TrimSpace(*patch.OrderIDFormat)
	}
	if patch.FreeShippingThreshold != nil {
		v := *patch.FreeShippingThreshold
		s.FreeShippingThreshold = &v
	}

	tx.state.StoreSettings = s
	tx.changed[models.SliceStoreSettings] = true
	tx.emit(entityStoreSettings, "updated", "")
	return nil
}

// UpdatePaymentSettingsCommand patches the payment settings singleton
type UpdatePaymentSettingsCommand struct {
	Patch models.UpdatePaymentSettingsRequest
}

func (c *UpdatePaymentSettingsCommand) Name() string { return "UpdatePaymentSettings" }

func (c *UpdatePaymentSettingsCommand) apply(tx *txn) error {
	p := tx.state.PaymentSettings
	setIf(&p.EnableStripe, c.Patch.EnableStripe)
	setIf(&p.StripePublishableKey, c.Patch.StripePublishableKey)
	setIf(&p.StripeSecretKey, c.Patch.StripeSecretKey)
	setIf(&p.EnablePayPal, c.Patch.EnablePayPal)
	setIf(&p.PaypalClientID, c.Patch.PaypalClientID)
	setIf(&p.PaypalClientSecret, c.Patch.PaypalClientSecret)
	setIf(&p.EnableCOD, c.Patch.EnableCOD)
	setIf(&p.EnableBankTransfer, c.Patch.EnableBankTransfer)
	setIf(&p.BankDetails, c.Patch.BankDetails)
	if p.EnableStripe && p.StripePublishableKey == "" {
		return invalid("stripePublishableKey", "is required when Stripe is enabled")
	}
	if p.EnablePayPal && p.PaypalClientID == "" {
		return invalid("paypalClientId", "is required when PayPal is enabled")
	}

	tx.state.PaymentSettings = p
	tx.changed[models.SlicePaymentSettings] = true
	tx.emit(entityPaymentSettings, "updated", "")
	return nil
}

// UpdateStoreSettings patches the store settings and returns the result
func (s *Store) UpdateStoreSettings(ctx context.Context, patch models.UpdateStoreSettingsRequest) (models.StoreSettings, error) {
	if err := s.Execute(ctx, &UpdateStoreSettingsCommand{Patch: patch}); err != nil {
		return models.StoreSettings{}, err
	}
	return s.StoreSettings(), nil
}

// UpdatePaymentSettings patches the payment settings and returns the result
func (s *Store) UpdatePaymentSettings(ctx context.Context, patch models.UpdatePaymentSettingsRequest) (models.PaymentSettings, error) {
	if err := s.Execute(ctx, &UpdatePaymentSettingsCommand{Patch: patch}); err != nil {
		return models.PaymentSettings{}, err
	}
	return s.PaymentSettings(), nil
}

// StoreSettings returns a copy of the store settings
func (s *Store) StoreSettings() models.StoreSettings {
	var out models.StoreSettings
	s.read(func(state *models.Snapshot) { out = state.StoreSettings.Clone() })
	return out
}

// PaymentSettings returns a copy of the payment settings
func (s *Store) PaymentSettings() models.PaymentSettings {
	var out models.PaymentSettings
	s.read(func(state *models.Snapshot) { out = state.PaymentSettings })
	return out
}
