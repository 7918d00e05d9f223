package store

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

const entityCustomer = "customer"

// CreateCustomerCommand adds a customer
type CreateCustomerCommand struct {
	Input models.CreateCustomerRequest

	Created models.Customer
}

func (c *CreateCustomerCommand) Name() string { return "CreateCustomer" }

func (c *CreateCustomerCommand) apply(tx *txn) error {
	in := c.Input
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	cust := models.Customer{
		ID:               tx.store.newID(),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:            in.Phone,
		AcceptsMarketing: in.AcceptsMarketing,
		Status:           in.Status,
		Addresses:        tx.addressIDs(in.Addresses),
		Tags:             normalizeTags(in.Tags),
		Notes:            in.Notes,
		CreatedAt:        tx.now,
		UpdatedAt:        tx.now,
	}
	if cust.Status == "" {
		cust.Status = models.CustomerStatusActive
	}
	tx.state.Customers = append(tx.customers(), cust)
	tx.emit(entityCustomer, "created", cust.ID)
	c.Created = cust.Clone()
	return nil
}

// UpdateCustomerCommand merges a patch onto a customer
type UpdateCustomerCommand struct {
	ID    string
	Patch models.UpdateCustomerRequest

	Updated models.Customer
}

func (c *UpdateCustomerCommand) Name() string { return "UpdateCustomer" }

func (c *UpdateCustomerCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"firstName": patch.FirstName, "lastName": patch.LastName, "email": patch.Email}); err != nil {
		return err
	}
	patch.FirstName = trimmed(patch.FirstName)
	patch.LastName = trimmed(patch.LastName)
	patch.Email = trimmed(patch.Email)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Customers, func(cu models.Customer) bool { return cu.ID == c.ID })
	if i < 0 {
		return notFound(entityCustomer, c.ID)
	}
	cust := tx.state.Customers[i].Clone()
	if patch.FirstName != nil {
		cust.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		cust.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		cust.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		cust.Phone = patch.Phone
	}
	if patch.Notes != nil {
		cust.Notes = patch.Notes
	}
	setIf(&cust.AcceptsMarketing, patch.AcceptsMarketing)
	setIf(&cust.Status, patch.Status)
	if patch.Addresses != nil {
		cust.Addresses = tx.addressIDs(patch.Addresses)
	}
	if patch.Tags != nil {
		cust.Tags = normalizeTags(patch.Tags)
	}
	cust.UpdatedAt = tx.now

	tx.customers()[i] = cust
	tx.emit(entityCustomer, "updated", cust.ID)
	c.Updated = cust.Clone()
	return nil
}

// DeleteCustomerCommand removes a customer. Orders keep their embedded snapshot.
type DeleteCustomerCommand struct {
	ID string
}

func (c *DeleteCustomerCommand) Name() string { return "DeleteCustomer" }

func (c *DeleteCustomerCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Customers, func(cu models.Customer) bool { return cu.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityCustomer, c.ID)
	}
	return ConfirmRequest{Entity: entityCustomer, ID: c.ID, Label: state.Customers[i].FullName()}, nil
}

func (c *DeleteCustomerCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Customers, func(cu models.Customer) bool { return cu.ID == c.ID })
	if i < 0 {
		return notFound(entityCustomer, c.ID)
	}
	tx.state.Customers = removeAt(tx.customers(), i)
	tx.emit(entityCustomer, "deleted", c.ID)
	return nil
}

// addressIDs copies addresses, assigning ids where missing and keeping at most one default
func (tx *txn) addressIDs(in []models.Address) []models.Address {
	out := make([]models.Address, len(in))
	hasDefault := false
	for i, a := range in {
		a = a.Clone()
		if a.ID == "" {
			a.ID = tx.store.newID()
		}
		if a.IsDefault {
			if hasDefault {
				a.IsDefault = false
			}
			hasDefault = true
		}
		out[i] = a
	}
	if !hasDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	return out
}

// CreateCustomer adds a customer and returns the new customer collection
func (s *Store) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) ([]models.Customer, error) {
	if err := s.Execute(ctx, &CreateCustomerCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Customers(), nil
}

// UpdateCustomer patches a customer and returns the new customer collection
func (s *Store) UpdateCustomer(ctx context.Context, id string, patch models.UpdateCustomerRequest) ([]models.Customer, error) {
	if err := s.Execute(ctx, &UpdateCustomerCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Customers(), nil
}

// DeleteCustomer removes a customer once confirmed and returns the new customer collection
func (s *Store) DeleteCustomer(ctx context.Context, id string) ([]models.Customer, error) {
	if err := s.Execute(ctx, &DeleteCustomerCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Customers(), nil
}

// Customers returns a copy of the customer collection
func (s *Store) Customers() []models.Customer {
	var out []models.Customer
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Customers, models.Customer.Clone) })
	return out
}

// Customer returns one customer by id
func (s *Store) Customer(id string) (models.Customer, error) {
	var (
		out models.Customer
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Customers, func(cu models.Customer) bool { return cu.ID == id })
		if i < 0 {
			err = notFound(entityCustomer, id)
			return
		}
		out = state.Customers[i].Clone()
	})
	return out, err
}
