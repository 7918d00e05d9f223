package models

// Snapshot is the full state of one store namespace
type Snapshot struct {
	Products        []Product       `json:"products"`
	Orders          []Order         `json:"orders"`
	Customers       []Customer      `json:"customers"`
	Categories      []Category      `json:"categories"`
	Collections     []Collection    `json:"collections"`
	Discounts       []Discount      `json:"discounts"`
	Pages           []Page          `json:"pages"`
	StoreSettings   StoreSettings   `json:"storeSettings"`
	PaymentSettings PaymentSettings `json:"paymentSettings"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Products:        CloneSlice(s.Products, Product.Clone),
		Orders:          CloneSlice(s.Orders, Order.Clone),
		Customers:       CloneSlice(s.Customers, Customer.Clone),
		Categories:      CloneSlice(s.Categories, Category.Clone),
		Collections:     CloneSlice(s.Collections, Collection.Clone),
		Discounts:       CloneSlice(s.Discounts, Discount.Clone),
		Pages:           CloneSlice(s.Pages, Page.Clone),
		StoreSettings:   s.StoreSettings.Clone(),
		PaymentSettings: s.PaymentSettings,
	}
}

// CloneSlice deep-copies a slice using the element's clone function. The result is never nil.
func CloneSlice[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// Names of the slices of a snapshot as persisted in a namespace blob
const (
	SliceProducts        = "products"
	SliceOrders          = "orders"
	SliceCustomers       = "customers"
	SliceCategories      = "categories"
	SliceCollections     = "collections"
	SliceDiscounts       = "discounts"
	SlicePages           = "pages"
	SliceStoreSettings   = "storeSettings"
	SlicePaymentSettings = "paymentSettings"
)

// TrackedSlices lists every slice of a snapshot in persistence order
var TrackedSlices = []string{
	SliceProducts,
	SliceOrders,
	SliceCustomers,
	SliceCategories,
	SliceCollections,
	SliceDiscounts,
	SliceStoreSettings,
	SlicePaymentSettings,
	SlicePages,
}
