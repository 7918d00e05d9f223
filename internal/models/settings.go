package models

// StoreSettings holds the store-wide configuration singleton
type StoreSettings struct {
	StoreName               string     `json:"storeName"`
	StoreDescription        string     `json:"storeDescription"`
	StoreEmail              string     `json:"storeEmail"`
	StorePhone              string     `json:"storePhone"`
	Currency                string     `json:"currency"`
	WeightUnit              WeightUnit `json:"weightUnit"`
	Timezone                string     `json:"timezone"`
	OrderIDFormat           string     `json:"orderIdFormat"`
	EnableInventoryTracking bool       `json:"enableInventoryTracking"`
	EnableTaxes             bool       `json:"enableTaxes"`
	TaxRate                 float64    `json:"taxRate"`
	EnableShipping          bool       `json:"enableShipping"`
	FreeShippingThreshold   *float64   `json:"freeShippingThreshold,omitempty"`
	FlatShippingRate        float64    `json:"flatShippingRate"`
	EnableReviews           bool       `json:"enableReviews"`
	EnableWishlist          bool       `json:"enableWishlist"`
	EnableCompareProducts   bool       `json:"enableCompareProducts"`
	EnableGuestCheckout     bool       `json:"enableGuestCheckout"`
	RequirePhoneNumber      bool       `json:"requirePhoneNumber"`
}

// DefaultStoreSettings returns the settings of a freshly installed store
func DefaultStoreSettings() StoreSettings {
	threshold := 100.0
	return StoreSettings{
		StoreName:               "My Store",
		StoreDescription:        "",
		StoreEmail:              "",
		StorePhone:              "",
		Currency:                "USD",
		WeightUnit:              WeightUnitKg,
		Timezone:                "UTC",
		OrderIDFormat:           "#1000",
		EnableInventoryTracking: true,
		EnableTaxes:             true,
		TaxRate:                 10,
		EnableShipping:          true,
		FreeShippingThreshold:   &threshold,
		FlatShippingRate:        9.99,
		EnableReviews:           true,
		EnableWishlist:          true,
		EnableCompareProducts:   false,
		EnableGuestCheckout:     true,
		RequirePhoneNumber:      false,
	}
}

// Clone returns a deep copy of the settings
func (s StoreSettings) Clone() StoreSettings {
	out := s
	out.FreeShippingThreshold = cloneFloat(s.FreeShippingThreshold)
	return out
}

// UpdateStoreSettingsRequest represents a partial update of the store settings
type UpdateStoreSettingsRequest struct {
	StoreName               *string     `json:"storeName,omitempty" validate:"omitempty,min=1"`
	StoreDescription        *string     `json:"storeDescription,omitempty"`
	StoreEmail              *string     `json:"storeEmail,omitempty" validate:"omitempty,email"`
	StorePhone              *string     `json:"storePhone,omitempty"`
	Currency                *string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	WeightUnit              *WeightUnit `json:"weightUnit,omitempty" validate:"omitempty,oneof=kg lb oz g"`
	Timezone                *string     `json:"timezone,omitempty"`
	OrderIDFormat           *string     `json:"orderIdFormat,omitempty" validate:"omitempty,min=1"`
	EnableInventoryTracking *bool       `json:"enableInventoryTracking,omitempty"`
	EnableTaxes             *bool       `json:"enableTaxes,omitempty"`
	TaxRate                 *float64    `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
	EnableShipping          *bool       `json:"enableShipping,omitempty"`
	FreeShippingThreshold   *float64    `json:"freeShippingThreshold,omitempty" validate:"omitempty,gte=0"`
	FlatShippingRate        *float64    `json:"flatShippingRate,omitempty" validate:"omitempty,gte=0"`
	EnableReviews           *bool       `json:"enableReviews,omitempty"`
	EnableWishlist          *bool       `json:"enableWishlist,omitempty"`
	EnableCompareProducts   *bool       `json:"enableCompareProducts,omitempty"`
	EnableGuestCheckout     *bool       `json:"enableGuestCheckout,omitempty"`
	RequirePhoneNumber      *bool       `json:"requirePhoneNumber,omitempty"`
}

// PaymentSettings holds the payment provider configuration singleton
type PaymentSettings struct {
	EnableStripe         bool   `json:"enableStripe"`
	StripePublishableKey string `json:"stripePublishableKey"`
	StripeSecretKey      string `json:"stripeSecretKey"`
	EnablePayPal         bool   `json:"enablePayPal"`
	PaypalClientID       string `json:"paypalClientId"`
	PaypalClientSecret   string `json:"paypalClientSecret"`
	EnableCOD            bool   `json:"enableCOD"`
	EnableBankTransfer   bool   `json:"enableBankTransfer"`
	BankDetails          string `json:"bankDetails"`
}

// DefaultPaymentSettings returns the payment settings of a freshly installed store
func DefaultPaymentSettings() PaymentSettings {
	return PaymentSettings{
		EnableCOD:          true,
		EnableBankTransfer: true,
	}
}

// Redacted masks the provider secrets for API responses
func (p PaymentSettings) Redacted() PaymentSettings {
	out := p
	out.StripeSecretKey = mask(p.StripeSecretKey)
	out.PaypalClientSecret = mask(p.PaypalClientSecret)
	return out
}

func mask(secret string) string {
	if len(secret) <= 4 {
		if secret == "" {
			return ""
		}
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// UpdatePaymentSettingsRequest represents a partial update of the payment settings
type UpdatePaymentSettingsRequest struct {
	EnableStripe         *bool   `json:"enableStripe,omitempty"`
	StripePublishableKey *string `json:"stripePublishableKey,omitempty"`
	StripeSecretKey      *string `json:"stripeSecretKey,omitempty"`
	EnablePayPal         *bool   `json:"enablePayPal,omitempty"`
	PaypalClientID       *string `json:"paypalClientId,omitempty"`
	PaypalClientSecret   *string `json:"paypalClientSecret,omitempty"`
	EnableCOD            *bool   `json:"enableCOD,omitempty"`
	EnableBankTransfer   *bool   `json:"enableBankTransfer,omitempty"`
	BankDetails          *string `json:"bankDetails,omitempty"`
}
