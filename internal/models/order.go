package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusVoided        PaymentStatus = "voided"
)

// FulfillmentStatus represents how much of an order has shipped
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentStatusPartial     FulfillmentStatus = "partial"
	FulfillmentStatusFulfilled   FulfillmentStatus = "fulfilled"
)

// orderTransitions lists the statuses reachable from each status
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusRefunded},
}

// CanTransitionTo reports whether an order may move from s to next.
// Setting the current status again is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error describing an illegal status change
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("cannot change order status from %s to %s", s, next)
	}
	return nil
}

// Order represents an order. Customer is a snapshot taken at creation time.
type Order struct {
	ID                string            `json:"id"`
	OrderNumber       string            `json:"orderNumber"`
	Customer          Customer          `json:"customer"`
	Items             []OrderItem       `json:"items"`
	Subtotal          float64           `json:"subtotal"`
	Tax               float64           `json:"tax"`
	Shipping          float64           `json:"shipping"`
	Discount          float64           `json:"discount"`
	Total             float64           `json:"total"`
	DiscountCode      *string           `json:"discountCode,omitempty"`
	Status            OrderStatus       `json:"status"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`
	ShippingAddress   Address           `json:"shippingAddress"`
	BillingAddress    Address           `json:"billingAddress"`
	PaymentMethod     string            `json:"paymentMethod"`
	Notes             *string           `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// OrderItem holds copies of the product data at purchase time
type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Image     *string `json:"image,omitempty"`
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	out := o
	out.Customer = o.Customer.Clone()
	out.DiscountCode = cloneString(o.DiscountCode)
	out.Notes = cloneString(o.Notes)
	out.ShippingAddress = o.ShippingAddress.Clone()
	out.BillingAddress = o.BillingAddress.Clone()
	if o.Items != nil {
		out.Items = make([]OrderItem, len(o.Items))
		for i, item := range o.Items {
			item.VariantID = cloneString(item.VariantID)
			item.Image = cloneString(item.Image)
			out.Items[i] = item
		}
	}
	return out
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	CustomerID      string                   `json:"customerId" validate:"required"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountCode    *string                  `json:"discountCode,omitempty"`
	ShippingAddress *Address                 `json:"shippingAddress,omitempty"`
	BillingAddress  *Address                 `json:"billingAddress,omitempty"`
	PaymentMethod   string                   `json:"paymentMethod,omitempty"`
	Notes           *string                  `json:"notes,omitempty"`
}

// CreateOrderItemRequest selects a product (and optionally a variant) for an order
type CreateOrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
}

// UpdateOrderRequest updates the lifecycle fields of an order. Totals are never recomputed.
type UpdateOrderRequest struct {
	Status            *OrderStatus       `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled refunded"`
	PaymentStatus     *PaymentStatus     `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid partially_paid refunded voided"`
	FulfillmentStatus *FulfillmentStatus `json:"fulfillmentStatus,omitempty" validate:"omitempty,oneof=unfulfilled partial fulfilled"`
	ShippingAddress   *Address           `json:"shippingAddress,omitempty"`
	BillingAddress    *Address           `json:"billingAddress,omitempty"`
	Notes             *string            `json:"notes,omitempty"`
}
