package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"storefront-service/internal/models"
)

const entityOrder = "order"

// CreateOrderCommand places an order for an existing customer. Item data is copied from
// the catalog and totals are fixed here; they are never recomputed afterwards.
type CreateOrderCommand struct {
	Input models.CreateOrderRequest

	Created models.Order
}

func (c *CreateOrderCommand) Name() string { return "CreateOrder" }

func (c *CreateOrderCommand) apply(tx *txn) error {
	in := c.Input
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	ci := findIndex(tx.state.Customers, func(cu models.Customer) bool { return cu.ID == in.CustomerID })
	if ci < 0 {
		return notFound(entityCustomer, in.CustomerID)
	}
	customer := tx.state.Customers[ci].Clone()

	items := make([]models.OrderItem, 0, len(in.Items))
	var subtotal float64
	for _, req := range in.Items {
		item, err := tx.orderItem(req)
		if err != nil {
			return err
		}
		subtotal += item.Total
		items = append(items, item)
	}
	subtotal = RoundCents(subtotal)

	settings := tx.state.StoreSettings
	shipping := shippingFor(settings, subtotal)

	var (
		discount     float64
		discountCode *string
	)
	if in.DiscountCode != nil && strings.TrimSpace(*in.DiscountCode) != "" {
		d, err := tx.redeem(*in.DiscountCode, &customer, &subtotal)
		if err != nil {
			if IsNotFound(err) {
				return invalid("discountCode", "unknown discount code %q", *in.DiscountCode)
			}
			return err
		}
		discount = RoundCents(d.Amount(subtotal, shipping))
		code := d.Code
		discountCode = &code
	}

	var tax float64
	if settings.EnableTaxes {
		tax = RoundCents(subtotal * settings.TaxRate / 100)
	}

	order := models.Order{
		ID:                tx.store.newID(),
		OrderNumber:       nextOrderNumber(settings.OrderIDFormat, tx.state.Orders),
		Customer:          customer,
		Items:             items,
		Subtotal:          subtotal,
		Tax:               tax,
		Shipping:          shipping,
		Discount:          discount,
		Total:             OrderTotal(subtotal, tax, shipping, discount),
		DiscountCode:      discountCode,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		FulfillmentStatus: models.FulfillmentStatusUnfulfilled,
		PaymentMethod:     in.PaymentMethod,
		Notes:             in.Notes,
		CreatedAt:         tx.now,
		UpdatedAt:         tx.now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = defaultPaymentMethod(tx.state.PaymentSettings)
	}
	order.ShippingAddress = orderAddress(in.ShippingAddress, customer)
	order.BillingAddress = orderAddress(in.BillingAddress, customer)
	if in.BillingAddress == nil && in.ShippingAddress != nil {
		order.BillingAddress = order.ShippingAddress.Clone()
	}

	customer.TotalSpent = RoundCents(customer.TotalSpent + order.Total)
	customer.OrdersCount++
	customer.UpdatedAt = tx.now
	tx.customers()[ci] = customer

	tx.state.Orders = append(tx.orders(), order)
	tx.emit(entityOrder, "created", order.ID)
	c.Created = order.Clone()
	return nil
}

func (tx *txn) orderItem(req models.CreateOrderItemRequest) (models.OrderItem, error) {
	pi := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == req.ProductID })
	if pi < 0 {
		return models.OrderItem{}, notFound(entityProduct, req.ProductID)
	}
	p := tx.state.Products[pi]
	item := models.OrderItem{
		ID:        tx.store.newID(),
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Quantity:  req.Quantity,
		Price:     p.Price,
	}
	if len(p.Images) > 0 {
		img := p.Images[0]
		item.Image = &img
	}
	if req.VariantID != nil && *req.VariantID != "" {
		vi := findIndex(p.Variants, func(v models.ProductVariant) bool { return v.ID == *req.VariantID })
		if vi < 0 {
			return models.OrderItem{}, notFound(entityVariant, *req.VariantID)
		}
		v := p.Variants[vi]
		id := v.ID
		item.VariantID = &id
		item.Name = p.Name + " - " + v.Title
		item.SKU = v.SKU
		item.Price = v.Price
		if v.Image != nil {
			img := *v.Image
			item.Image = &img
		}
	}
	item.Total = RoundCents(item.Price * float64(item.Quantity))
	return item, nil
}

// UpdateOrderCommand changes lifecycle fields of an order. Status changes follow the
// order state machine; totals are left as they were at creation.
type UpdateOrderCommand struct {
	ID    string
	Patch models.UpdateOrderRequest

	Updated models.Order
}

func (c *UpdateOrderCommand) Name() string { return "UpdateOrder" }

func (c *UpdateOrderCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Orders, func(o models.Order) bool { return o.ID == c.ID })
	if i < 0 {
		return notFound(entityOrder, c.ID)
	}
	o := tx.state.Orders[i].Clone()
	if patch.Status != nil && *patch.Status != o.Status {
		if err := o.Status.ValidateTransition(*patch.Status); err != nil {
			return &ValidationError{Field: "status", Message: err.Error()}
		}
		o.Status = *patch.Status
		switch o.Status {
		case models.OrderStatusShipped, models.OrderStatusDelivered:
			if patch.FulfillmentStatus == nil {
				o.FulfillmentStatus = models.FulfillmentStatusFulfilled
			}
		case models.OrderStatusRefunded:
			if patch.PaymentStatus == nil && o.PaymentStatus == models.PaymentStatusPaid {
				o.PaymentStatus = models.PaymentStatusRefunded
			}
		}
	}
	setIf(&o.PaymentStatus, patch.PaymentStatus)
	setIf(&o.FulfillmentStatus, patch.FulfillmentStatus)
	if patch.ShippingAddress != nil {
		o.ShippingAddress = patch.ShippingAddress.Clone()
	}
	if patch.BillingAddress != nil {
		o.BillingAddress = patch.BillingAddress.Clone()
	}
	if patch.Notes != nil {
		o.Notes = patch.Notes
	}
	o.UpdatedAt = tx.now

	tx.orders()[i] = o
	tx.emit(entityOrder, "updated", o.ID)
	c.Updated = o.Clone()
	return nil
}

// DeleteOrderCommand removes an order. Customer totals are not adjusted.
type DeleteOrderCommand struct {
	ID string
}

func (c *DeleteOrderCommand) Name() string { return "DeleteOrder" }

func (c *DeleteOrderCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Orders, func(o models.Order) bool { return o.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityOrder, c.ID)
	}
	return ConfirmRequest{Entity: entityOrder, ID: c.ID, Label: state.Orders[i].OrderNumber}, nil
}

func (c *DeleteOrderCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Orders, func(o models.Order) bool { return o.ID == c.ID })
	if i < 0 {
		return notFound(entityOrder, c.ID)
	}
	tx.state.Orders = removeAt(tx.orders(), i)
	tx.emit(entityOrder, "deleted", c.ID)
	return nil
}

// RoundCents rounds an amount to two decimal places
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderTotal is subtotal + tax + shipping - discount, rounded to cents
func OrderTotal(subtotal, tax, shipping, discount float64) float64 {
	return RoundCents(subtotal + tax + shipping - discount)
}

func shippingFor(settings models.StoreSettings, subtotal float64) float64 {
	if !settings.EnableShipping {
		return 0
	}
	if settings.FreeShippingThreshold != nil && subtotal >= *settings.FreeShippingThreshold {
		return 0
	}
	return RoundCents(settings.FlatShippingRate)
}

func defaultPaymentMethod(p models.PaymentSettings) string {
	switch {
	case p.EnableStripe:
		return "stripe"
	case p.EnablePayPal:
		return "paypal"
	case p.EnableCOD:
		return "cod"
	case p.EnableBankTransfer:
		return "bank_transfer"
	}
	return "manual"
}

func orderAddress(in *models.Address, customer models.Customer) models.Address {
	if in != nil {
		return in.Clone()
	}
	if a, ok := customer.DefaultAddress(); ok {
		return a.Clone()
	}
	return models.Address{FirstName: customer.FirstName, LastName: customer.LastName}
}

// nextOrderNumber formats the successor of the highest order number sharing the
// format's prefix. "#1000" with no orders yields "#1001".
func nextOrderNumber(format string, orders []models.Order) string {
	prefix, base, width := splitOrderFormat(format)
	highest := base
	for _, o := range orders {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		n, err := strconv.Atoi(o.OrderNumber[len(prefix):])
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}

func splitOrderFormat(format string) (prefix string, base, width int) {
	if format == "" {
		format = "#1000"
	}
	end := len(format)
	start := end
	for start > 0 && unicode.IsDigit(rune(format[start-1])) {
		start--
	}
	prefix = format[:start]
	digits := format[start:end]
	if digits == "" {
		return prefix, 0, 1
	}
	base, _ = strconv.Atoi(digits)
	return prefix, base, len(digits)
}

// CreateOrder places an order and returns the new order collection
func (s *Store) CreateOrder(ctx context.Context, req models.CreateOrderRequest) ([]models.Order, error) {
	if err := s.Execute(ctx, &CreateOrderCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Orders(), nil
}

// UpdateOrder patches an order and returns the new order collection
func (s *Store) UpdateOrder(ctx context.Context, id string, patch models.UpdateOrderRequest) ([]models.Order, error) {
	if err := s.Execute(ctx, &UpdateOrderCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Orders(), nil
}

// DeleteOrder removes an order once confirmed and returns the new order collection
func (s *Store) DeleteOrder(ctx context.Context, id string) ([]models.Order, error) {
	if err := s.Execute(ctx, &DeleteOrderCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Orders(), nil
}

// Orders returns a copy of the order collection in insertion order
func (s *Store) Orders() []models.Order {
	var out []models.Order
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Orders, models.Order.Clone) })
	return out
}

// Order returns one order by id
func (s *Store) Order(id string) (models.Order, error) {
	var (
		out models.Order
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Orders, func(o models.Order) bool { return o.ID == id })
		if i < 0 {
			err = notFound(entityOrder, id)
			return
		}
		out = state.Orders[i].Clone()
	})
	return out, err
}
