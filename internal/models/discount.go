package models

import (
	"strings"
	"time"
)

// DiscountType represents how a discount is applied
type DiscountType string

const (
	DiscountTypePercentage   DiscountType = "percentage"
	DiscountTypeFixedAmount  DiscountType = "fixed_amount"
	DiscountTypeFreeShipping DiscountType = "free_shipping"
)

// CustomerEligibility scopes which customers may use a discount
type CustomerEligibility string

const (
	EligibilityAll      CustomerEligibility = "all"
	EligibilitySpecific CustomerEligibility = "specific"
	EligibilityGroup    CustomerEligibility = "group"
)

// Discount represents a discount code
type Discount struct {
	ID                   string              `json:"id"`
	Code                 string              `json:"code"`
	Type                 DiscountType        `json:"type"`
	Value                float64             `json:"value"`
	MinimumAmount        *float64            `json:"minimumAmount,omitempty"`
	UsageLimit           *int                `json:"usageLimit,omitempty"`
	UsageCount           int                 `json:"usageCount"`
	StartsAt             time.Time           `json:"startsAt"`
	EndsAt               *time.Time          `json:"endsAt,omitempty"`
	IsActive             bool                `json:"isActive"`
	AppliesToProducts    []string            `json:"appliesToProducts"`
	AppliesToCollections []string            `json:"appliesToCollections"`
	CustomerEligibility  CustomerEligibility `json:"customerEligibility"`
	EligibleCustomers    []string            `json:"eligibleCustomers"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// Exhausted reports whether the usage limit has been reached
func (d Discount) Exhausted() bool {
	return d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit
}

// ActiveAt reports whether the discount is usable at t
func (d Discount) ActiveAt(t time.Time) bool {
	if !d.IsActive || t.Before(d.StartsAt) {
		return false
	}
	return d.EndsAt == nil || !t.After(*d.EndsAt)
}

// EligibleFor reports whether a customer (by id or tag) may redeem the discount
func (d Discount) EligibleFor(c Customer) bool {
	switch d.CustomerEligibility {
	case EligibilitySpecific:
		for _, id := range d.EligibleCustomers {
			if id == c.ID || strings.EqualFold(id, c.Email) {
				return true
			}
		}
		return false
	case EligibilityGroup:
		for _, group := range d.EligibleCustomers {
			for _, tag := range c.Tags {
				if strings.EqualFold(group, tag) {
					return true
				}
			}
		}
		return false
	}
	return true
}

// Amount returns the discount applied to a subtotal and shipping charge
func (d Discount) Amount(subtotal, shipping float64) float64 {
	switch d.Type {
	case DiscountTypePercentage:
		return subtotal * d.Value / 100
	case DiscountTypeFixedAmount:
		if d.Value > subtotal {
			return subtotal
		}
		return d.Value
	case DiscountTypeFreeShipping:
		return shipping
	}
	return 0
}

// Clone returns a deep copy of the discount
func (d Discount) Clone() Discount {
	out := d
	out.MinimumAmount = cloneFloat(d.MinimumAmount)
	if d.UsageLimit != nil {
		v := *d.UsageLimit
		out.UsageLimit = &v
	}
	if d.EndsAt != nil {
		v := *d.EndsAt
		out.EndsAt = &v
	}
	out.AppliesToProducts = cloneStrings(d.AppliesToProducts)
	out.AppliesToCollections = cloneStrings(d.AppliesToCollections)
	out.EligibleCustomers = cloneStrings(d.EligibleCustomers)
	return out
}

// CreateDiscountRequest represents a request to create a discount
type CreateDiscountRequest struct {
	Code                 string              `json:"code" validate:"required"`
	Type                 DiscountType        `json:"type,omitempty" validate:"omitempty,oneof=percentage fixed_amount free_shipping"`
	Value                float64             `json:"value" validate:"required,gte=0"`
	MinimumAmount        *float64            `json:"minimumAmount,omitempty" validate:"omitempty,gte=0"`
	UsageLimit           *int                `json:"usageLimit,omitempty" validate:"omitempty,gte=0"`
	UsageCount           int                 `json:"usageCount" validate:"gte=0"`
	StartsAt             *time.Time          `json:"startsAt,omitempty"`
	EndsAt               *time.Time          `json:"endsAt,omitempty"`
	IsActive             *bool               `json:"isActive,omitempty"`
	AppliesToProducts    []string            `json:"appliesToProducts,omitempty"`
	AppliesToCollections []string            `json:"appliesToCollections,omitempty"`
	CustomerEligibility  CustomerEligibility `json:"customerEligibility,omitempty" validate:"omitempty,oneof=all specific group"`
	EligibleCustomers    []string            `json:"eligibleCustomers,omitempty"`
}

// UpdateDiscountRequest represents a partial update of a discount
type UpdateDiscountRequest struct {
	Code                 *string              `json:"code,omitempty" validate:"omitempty,min=1"`
	Type                 *DiscountType        `json:"type,omitempty" validate:"omitempty,oneof=percentage fixed_amount free_shipping"`
	Value                *float64             `json:"value,omitempty" validate:"omitempty,gte=0"`
	MinimumAmount        *float64             `json:"minimumAmount,omitempty" validate:"omitempty,gte=0"`
	UsageLimit           *int                 `json:"usageLimit,omitempty" validate:"omitempty,gte=0"`
	UsageCount           *int                 `json:"usageCount,omitempty" validate:"omitempty,gte=0"`
	StartsAt             *time.Time           `json:"startsAt,omitempty"`
	EndsAt               *time.Time           `json:"endsAt,omitempty"`
	IsActive             *bool                `json:"isActive,omitempty"`
	AppliesToProducts    []string             `json:"appliesToProducts,omitempty"`
	AppliesToCollections []string             `json:"appliesToCollections,omitempty"`
	CustomerEligibility  *CustomerEligibility `json:"customerEligibility,omitempty" validate:"omitempty,oneof=all specific group"`
	EligibleCustomers    []string             `json:"eligibleCustomers,omitempty"`
}

// RedeemDiscountRequest redeems a code, optionally on behalf of a customer
type RedeemDiscountRequest struct {
	Code       string `json:"code" validate:"required"`
	CustomerID string `json:"customerId,omitempty"`
}
