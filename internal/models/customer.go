package models

import "time"

// CustomerStatus represents the status of a customer account
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusDisabled CustomerStatus = "disabled"
)

// Customer represents a customer entity
type Customer struct {
	ID               string         `json:"id"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Email            string         `json:"email"`
	Phone            *string        `json:"phone,omitempty"`
	AcceptsMarketing bool           `json:"acceptsMarketing"`
	TotalSpent       float64        `json:"totalSpent"`
	OrdersCount      int            `json:"ordersCount"`
	Status           CustomerStatus `json:"status"`
	Addresses        []Address      `json:"addresses"`
	Tags             []string       `json:"tags"`
	Notes            *string        `json:"notes,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// FullName returns "first last"
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// DefaultAddress returns the address flagged as default, or the first one
func (c Customer) DefaultAddress() (Address, bool) {
	for _, a := range c.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(c.Addresses) > 0 {
		return c.Addresses[0], true
	}
	return Address{}, false
}

// Clone returns a deep copy of the customer
func (c Customer) Clone() Customer {
	out := c
	out.Phone = cloneString(c.Phone)
	out.Notes = cloneString(c.Notes)
	out.Tags = cloneStrings(c.Tags)
	if c.Addresses != nil {
		out.Addresses = make([]Address, len(c.Addresses))
		for i, a := range c.Addresses {
			out.Addresses[i] = a.Clone()
		}
	}
	return out
}

// Address is a postal address owned by a customer or copied onto an order
type Address struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Company   *string `json:"company,omitempty"`
	Address1  string  `json:"address1"`
	Address2  *string `json:"address2,omitempty"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Country   string  `json:"country"`
	Zip       string  `json:"zip"`
	Phone     *string `json:"phone,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

// Clone returns a deep copy of the address
func (a Address) Clone() Address {
	out := a
	out.Company = cloneString(a.Company)
	out.Address2 = cloneString(a.Address2)
	out.Phone = cloneString(a.Phone)
	return out
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	FirstName        string         `json:"firstName" validate:"required"`
	LastName         string         `json:"lastName" validate:"required"`
	Email            string         `json:"email" validate:"required,email"`
	Phone            *string        `json:"phone,omitempty"`
	AcceptsMarketing bool           `json:"acceptsMarketing"`
	Status           CustomerStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	Addresses        []Address      `json:"addresses,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
}

// UpdateCustomerRequest represents a partial update of a customer
type UpdateCustomerRequest struct {
	FirstName        *string         `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName         *string         `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email            *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string         `json:"phone,omitempty"`
	AcceptsMarketing *bool           `json:"acceptsMarketing,omitempty"`
	Status           *CustomerStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	Addresses        []Address       `json:"addresses,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}
