package models

import "time"

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// WeightUnit is the unit used for product and store weights
type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
	WeightUnitOz WeightUnit = "oz"
	WeightUnitG  WeightUnit = "g"
)

// Product represents a product entity
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Price            float64          `json:"price"`
	CompareAtPrice   *float64         `json:"compareAtPrice,omitempty"`
	Cost             float64          `json:"cost"`
	SKU              string           `json:"sku"`
	Barcode          *string          `json:"barcode,omitempty"`
	TrackQuantity    bool             `json:"trackQuantity"`
	Quantity         int              `json:"quantity"`
	Weight           float64          `json:"weight"`
	WeightUnit       WeightUnit       `json:"weightUnit"`
	Category         string           `json:"category"`
	Tags             []string         `json:"tags"`
	Status           ProductStatus    `json:"status"`
	Vendor           string           `json:"vendor"`
	ProductType      string           `json:"productType"`
	Images           []string         `json:"images"`
	Variants         []ProductVariant `json:"variants"`
	SeoTitle         *string          `json:"seoTitle,omitempty"`
	SeoDescription   *string          `json:"seoDescription,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Slug             string           `json:"slug"`
}

// ProductVariant represents a product variant. ProductID is a back-reference;
// the owning product holds the variant in its Variants list.
type ProductVariant struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"productId"`
	Title          string            `json:"title"`
	Price          float64           `json:"price"`
	CompareAtPrice *float64          `json:"compareAtPrice,omitempty"`
	Cost           float64           `json:"cost"`
	SKU            string            `json:"sku"`
	Barcode        *string           `json:"barcode,omitempty"`
	Quantity       int               `json:"quantity"`
	Weight         float64           `json:"weight"`
	Options        map[string]string `json:"options"`
	Image          *string           `json:"image,omitempty"`
}

// Clone returns a deep copy of the product
func (p Product) Clone() Product {
	out := p
	out.CompareAtPrice = cloneFloat(p.CompareAtPrice)
	out.Barcode = cloneString(p.Barcode)
	out.SeoTitle = cloneString(p.SeoTitle)
	out.SeoDescription = cloneString(p.SeoDescription)
	out.Tags = cloneStrings(p.Tags)
	out.Images = cloneStrings(p.Images)
	if p.Variants != nil {
		out.Variants = make([]ProductVariant, len(p.Variants))
		for i, v := range p.Variants {
			out.Variants[i] = v.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the variant
func (v ProductVariant) Clone() ProductVariant {
	out := v
	out.CompareAtPrice = cloneFloat(v.CompareAtPrice)
	out.Barcode = cloneString(v.Barcode)
	out.Image = cloneString(v.Image)
	if v.Options != nil {
		out.Options = make(map[string]string, len(v.Options))
		for k, val := range v.Options {
			out.Options[k] = val
		}
	}
	return out
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name             string        `json:"name" validate:"required"`
	Description      string        `json:"description" validate:"required"`
	ShortDescription string        `json:"shortDescription"`
	Price            float64       `json:"price" validate:"gt=0"`
	CompareAtPrice   *float64      `json:"compareAtPrice,omitempty" validate:"omitempty,gte=0"`
	Cost             float64       `json:"cost" validate:"gte=0"`
	SKU              string        `json:"sku" validate:"required"`
	Barcode          *string       `json:"barcode,omitempty"`
	TrackQuantity    *bool         `json:"trackQuantity,omitempty"`
	Quantity         int           `json:"quantity" validate:"gte=0"`
	Weight           float64       `json:"weight" validate:"gte=0"`
	WeightUnit       WeightUnit    `json:"weightUnit,omitempty" validate:"omitempty,oneof=kg lb oz g"`
	Category         string        `json:"category"`
	Tags             []string      `json:"tags,omitempty"`
	Status           ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active draft archived"`
	Vendor           string        `json:"vendor,omitempty"`
	ProductType      string        `json:"productType,omitempty"`
	Image            *ImageUpload  `json:"image,omitempty"`
	SeoTitle         *string       `json:"seoTitle,omitempty"`
	SeoDescription   *string       `json:"seoDescription,omitempty"`
}

// UpdateProductRequest represents a partial update of a product. Nil fields are left untouched.
type UpdateProductRequest struct {
	Name             *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Description      *string        `json:"description,omitempty"`
	ShortDescription *string        `json:"shortDescription,omitempty"`
	Price            *float64       `json:"price,omitempty" validate:"omitempty,gt=0"`
	CompareAtPrice   *float64       `json:"compareAtPrice,omitempty" validate:"omitempty,gte=0"`
	Cost             *float64       `json:"cost,omitempty" validate:"omitempty,gte=0"`
	SKU              *string        `json:"sku,omitempty" validate:"omitempty,min=1"`
	Barcode          *string        `json:"barcode,omitempty"`
	TrackQuantity    *bool          `json:"trackQuantity,omitempty"`
	Quantity         *int           `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Weight           *float64       `json:"weight,omitempty" validate:"omitempty,gte=0"`
	WeightUnit       *WeightUnit    `json:"weightUnit,omitempty" validate:"omitempty,oneof=kg lb oz g"`
	Category         *string        `json:"category,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Status           *ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active draft archived"`
	Vendor           *string        `json:"vendor,omitempty"`
	ProductType      *string        `json:"productType,omitempty"`
	Image            *ImageUpload   `json:"image,omitempty"`
	SeoTitle         *string        `json:"seoTitle,omitempty"`
	SeoDescription   *string        `json:"seoDescription,omitempty"`
}

// CreateProductVariantRequest represents a request to create a product variant
type CreateProductVariantRequest struct {
	Title          string            `json:"title" validate:"required"`
	Price          float64           `json:"price" validate:"gt=0"`
	CompareAtPrice *float64          `json:"compareAtPrice,omitempty" validate:"omitempty,gte=0"`
	Cost           float64           `json:"cost" validate:"gte=0"`
	SKU            string            `json:"sku" validate:"required"`
	Barcode        *string           `json:"barcode,omitempty"`
	Quantity       int               `json:"quantity" validate:"gte=0"`
	Weight         float64           `json:"weight" validate:"gte=0"`
	Options        map[string]string `json:"options,omitempty"`
	Image          *string           `json:"image,omitempty"`
}

// UpdateProductVariantRequest represents a partial update of a variant
type UpdateProductVariantRequest struct {
	Title          *string           `json:"title,omitempty" validate:"omitempty,min=1"`
	Price          *float64          `json:"price,omitempty" validate:"omitempty,gt=0"`
	CompareAtPrice *float64          `json:"compareAtPrice,omitempty" validate:"omitempty,gte=0"`
	Cost           *float64          `json:"cost,omitempty" validate:"omitempty,gte=0"`
	SKU            *string           `json:"sku,omitempty" validate:"omitempty,min=1"`
	Barcode        *string           `json:"barcode,omitempty"`
	Quantity       *int              `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Weight         *float64          `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Options        map[string]string `json:"options,omitempty"`
	Image          *string           `json:"image,omitempty"`
}

// ImageUpload is an image attached to a product; it is registered with the media library.
type ImageUpload struct {
	URL string `json:"url" validate:"required"`
	Alt string `json:"alt,omitempty"`
}

// Media is the record handed to the media library
type Media struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	URL   string    `json:"url"`
	Type  string    `json:"type"`
	Alt   string    `json:"alt"`
}

const MediaTypeImage = "image"

// Actor is the authenticated user performing a mutation
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}
