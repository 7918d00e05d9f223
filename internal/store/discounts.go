package store

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

const entityDiscount = "discount"

// CreateDiscountCommand adds a discount code
type CreateDiscountCommand struct {
	Input models.CreateDiscountRequest

	Created models.Discount
}

func (c *CreateDiscountCommand) Name() string { return "CreateDiscount" }

func (c *CreateDiscountCommand) apply(tx *txn) error {
	in := c.Input
	in.Code = strings.TrimSpace(in.Code)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	code := strings.TrimSpace(in.Code)
	if discountIndex(&tx.state, code) >= 0 {
		return invalid("code", "discount code %q already exists", code)
	}
	d := models.Discount{
		ID:                   tx.store.newID(),
		Code:                 code,
		Type:                 in.Type,
		Value:                in.Value,
		MinimumAmount:        in.MinimumAmount,
		UsageLimit:           in.UsageLimit,
		UsageCount:           in.UsageCount,
		StartsAt:             tx.now,
		EndsAt:               in.EndsAt,
		IsActive:             true,
		AppliesToProducts:    nonNil(in.AppliesToProducts),
		AppliesToCollections: nonNil(in.AppliesToCollections),
		CustomerEligibility:  in.CustomerEligibility,
		EligibleCustomers:    nonNil(in.EligibleCustomers),
		CreatedAt:            tx.now,
		UpdatedAt:            tx.now,
	}
	if in.StartsAt != nil {
		d.StartsAt = in.StartsAt.UTC()
	}
	setIf(&d.IsActive, in.IsActive)
	if d.Type == "" {
		d.Type = models.DiscountTypePercentage
	}
	if d.CustomerEligibility == "" {
		d.CustomerEligibility = models.EligibilityAll
	}
	if err := checkDiscount(d); err != nil {
		return err
	}
	tx.state.Discounts = append(tx.discounts(), d)
	tx.emit(entityDiscount, "created", d.ID)
	c.Created = d.Clone()
	return nil
}

// UpdateDiscountCommand merges a patch onto a discount. The usage invariant is re-checked.
type UpdateDiscountCommand struct {
	ID    string
	Patch models.UpdateDiscountRequest

	Updated models.Discount
}

func (c *UpdateDiscountCommand) Name() string { return "UpdateDiscount" }

func (c *UpdateDiscountCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"code": patch.Code}); err != nil {
		return err
	}
	patch.Code = trimmed(patch.Code)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Discounts, func(d models.Discount) bool { return d.ID == c.ID })
	if i < 0 {
		return notFound(entityDiscount, c.ID)
	}
	d := tx.state.Discounts[i].Clone()
	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if j := discountIndex(&tx.state, code); j >= 0 && j != i {
			return invalid("code", "discount code %q already exists", code)
		}
		d.Code = code
	}
	setIf(&d.Type, patch.Type)
	setIf(&d.Value, patch.Value)
	setIf(&d.UsageCount, patch.UsageCount)
	setIf(&d.IsActive, patch.IsActive)
	setIf(&d.CustomerEligibility, patch.CustomerEligibility)
	if patch.MinimumAmount != nil {
		d.MinimumAmount = patch.MinimumAmount
	}
	if patch.UsageLimit != nil {
		d.UsageLimit = patch.UsageLimit
	}
	if patch.StartsAt != nil {
		d.StartsAt = patch.StartsAt.UTC()
	}
	if patch.EndsAt != nil {
		d.EndsAt = patch.EndsAt
	}
	if patch.AppliesToProducts != nil {
		d.AppliesToProducts = patch.AppliesToProducts
	}
	if patch.AppliesToCollections != nil {
		d.AppliesToCollections = patch.AppliesToCollections
	}
	if patch.EligibleCustomers != nil {
		d.EligibleCustomers = patch.EligibleCustomers
	}
	if err := checkDiscount(d); err != nil {
		return err
	}
	d.UpdatedAt = tx.now

	tx.discounts()[i] = d
	tx.emit(entityDiscount, "updated", d.ID)
	c.Updated = d.Clone()
	return nil
}

// DeleteDiscountCommand removes a discount code
type DeleteDiscountCommand struct {
	ID string
}

func (c *DeleteDiscountCommand) Name() string { return "DeleteDiscount" }

func (c *DeleteDiscountCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Discounts, func(d models.Discount) bool { return d.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityDiscount, c.ID)
	}
	return ConfirmRequest{Entity: entityDiscount, ID: c.ID, Label: state.Discounts[i].Code}, nil
}

func (c *DeleteDiscountCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Discounts, func(d models.Discount) bool { return d.ID == c.ID })
	if i < 0 {
		return notFound(entityDiscount, c.ID)
	}
	tx.state.Discounts = removeAt(tx.discounts(), i)
	tx.emit(entityDiscount, "deleted", c.ID)
	return nil
}

// RedeemDiscountCommand records one use of a code. CustomerID, when set, is checked
// against the discount's eligibility and Subtotal against its minimum amount.
type RedeemDiscountCommand struct {
	Code       string
	CustomerID string
	Subtotal   *float64

	Redeemed models.Discount
}

func (c *RedeemDiscountCommand) Name() string { return "RedeemDiscount" }

func (c *RedeemDiscountCommand) apply(tx *txn) error {
	var customer *models.Customer
	if c.CustomerID != "" {
		i := findIndex(tx.state.Customers, func(cu models.Customer) bool { return cu.ID == c.CustomerID })
		if i < 0 {
			return notFound(entityCustomer, c.CustomerID)
		}
		customer = &tx.state.Customers[i]
	}
	d, err := tx.redeem(c.Code, customer, c.Subtotal)
	if err != nil {
		return err
	}
	c.Redeemed = d
	return nil
}

// redeem checks that code is usable and increments its usage count
func (tx *txn) redeem(code string, customer *models.Customer, subtotal *float64) (models.Discount, error) {
	i := discountIndex(&tx.state, code)
	if i < 0 {
		return models.Discount{}, notFound(entityDiscount, code)
	}
	d := tx.state.Discounts[i].Clone()
	switch {
	case !d.ActiveAt(tx.now):
		return models.Discount{}, &DiscountRejectedError{Code: d.Code, Reason: "not active"}
	case d.Exhausted():
		return models.Discount{}, &DiscountRejectedError{Code: d.Code, Reason: "usage limit reached"}
	case customer != nil && !d.EligibleFor(*customer):
		return models.Discount{}, &DiscountRejectedError{Code: d.Code, Reason: "customer is not eligible"}
	case subtotal != nil && d.MinimumAmount != nil && *subtotal < *d.MinimumAmount:
		return models.Discount{}, &DiscountRejectedError{Code: d.Code, Reason: "minimum order amount not met"}
	}
	d.UsageCount++
	d.UpdatedAt = tx.now

	tx.discounts()[i] = d
	tx.emit(entityDiscount, "redeemed", d.ID)
	return d.Clone(), nil
}

// checkDiscount enforces usageCount <= usageLimit and a sane percentage
func checkDiscount(d models.Discount) error {
	if d.UsageLimit != nil && d.UsageCount > *d.UsageLimit {
		return invalid("usageCount", "must not exceed usageLimit (%d)", *d.UsageLimit)
	}
	if d.Type == models.DiscountTypePercentage && d.Value > 100 {
		return invalid("value", "percentage must not exceed 100")
	}
	if d.EndsAt != nil && d.EndsAt.Before(d.StartsAt) {
		return invalid("endsAt", "must not be before startsAt")
	}
	return nil
}

func discountIndex(state *models.Snapshot, code string) int {
	code = strings.TrimSpace(code)
	return findIndex(state.Discounts, func(d models.Discount) bool { return strings.EqualFold(d.Code, code) })
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// CreateDiscount adds a discount and returns the new discount collection
func (s *Store) CreateDiscount(ctx context.Context, req models.CreateDiscountRequest) ([]models.Discount, error) {
	if err := s.Execute(ctx, &CreateDiscountCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Discounts(), nil
}

// UpdateDiscount patches a discount and returns the new discount collection
func (s *Store) UpdateDiscount(ctx context.Context, id string, patch models.UpdateDiscountRequest) ([]models.Discount, error) {
	if err := s.Execute(ctx, &UpdateDiscountCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Discounts(), nil
}

// DeleteDiscount removes a discount once confirmed and returns the new discount collection
func (s *Store) DeleteDiscount(ctx context.Context, id string) ([]models.Discount, error) {
	if err := s.Execute(ctx, &DeleteDiscountCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Discounts(), nil
}

// RedeemDiscount increments the usage count of code if it can still be used
func (s *Store) RedeemDiscount(ctx context.Context, code string) (models.Discount, error) {
	cmd := &RedeemDiscountCommand{Code: code}
	if err := s.Execute(ctx, cmd); err != nil {
		return models.Discount{}, err
	}
	return cmd.Redeemed, nil
}

// Discounts returns a copy of the discount collection
func (s *Store) Discounts() []models.Discount {
	var out []models.Discount
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Discounts, models.Discount.Clone) })
	return out
}

// Discount returns one discount by id
func (s *Store) Discount(id string) (models.Discount, error) {
	var (
		out models.Discount
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Discounts, func(d models.Discount) bool { return d.ID == id })
		if i < 0 {
			err = notFound(entityDiscount, id)
			return
		}
		out = state.Discounts[i].Clone()
	})
	return out, err
}
