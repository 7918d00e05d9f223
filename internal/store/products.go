package store

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

const (
	entityProduct = "product"
	entityVariant = "variant"
)

// CreateProductCommand adds a product. Requires an authenticated actor.
type CreateProductCommand struct {
	Input models.CreateProductRequest

	Created models.Product
}

func (c *CreateProductCommand) Name() string { return "CreateProduct" }

func (c *CreateProductCommand) apply(tx *txn) error {
	if _, err := tx.store.requireActor(tx.ctx); err != nil {
		return err
	}
	in := c.Input
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	if err := nonBlank(map[string]*string{"description": &in.Description}); err != nil {
		return err
	}
	sku := strings.TrimSpace(in.SKU)
	if skuTaken(&tx.state, sku, "") {
		return invalid("sku", "sku %q is already in use", sku)
	}

	p := models.Product{
		ID:               tx.store.newID(),
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		CompareAtPrice:   in.CompareAtPrice,
		Cost:             in.Cost,
		SKU:              sku,
		Barcode:          in.Barcode,
		TrackQuantity:    tx.state.StoreSettings.EnableInventoryTracking,
		Quantity:         in.Quantity,
		Weight:           in.Weight,
		WeightUnit:       in.WeightUnit,
		Category:         in.Category,
		Tags:             normalizeTags(in.Tags),
		Status:           in.Status,
		Vendor:           in.Vendor,
		ProductType:      in.ProductType,
		Images:           []string{},
		Variants:         []models.ProductVariant{},
		SeoTitle:         in.SeoTitle,
		SeoDescription:   in.SeoDescription,
		CreatedAt:        tx.now,
		UpdatedAt:        tx.now,
	}
	if in.TrackQuantity != nil {
		p.TrackQuantity = *in.TrackQuantity
	}
	if p.WeightUnit == "" {
		p.WeightUnit = tx.state.StoreSettings.WeightUnit
	}
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	p.Slug = uniqueSlug(Slugify(p.Name), func(slug string) bool { return productSlugTaken(&tx.state, slug, "") })
	if in.Image != nil {
		attachImage(tx, &p, *in.Image)
	}

	tx.state.Products = append(tx.products(), p)
	tx.emit(entityProduct, "created", p.ID)
	c.Created = p.Clone()
	return nil
}

// UpdateProductCommand merges a patch onto an existing product
type UpdateProductCommand struct {
	ID    string
	Patch models.UpdateProductRequest

	Updated models.Product
}

func (c *UpdateProductCommand) Name() string { return "UpdateProduct" }

func (c *UpdateProductCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"name": patch.Name, "sku": patch.SKU}); err != nil {
		return err
	}
	patch.Name = trimmed(patch.Name)
	patch.SKU = trimmed(patch.SKU)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == c.ID })
	if i < 0 {
		return notFound(entityProduct, c.ID)
	}
	p := tx.state.Products[i].Clone()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != p.Name {
			p.Name = name
			p.Slug = uniqueSlug(Slugify(name), func(slug string) bool { return productSlugTaken(&tx.state, slug, p.ID) })
		}
	}
	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		if sku != p.SKU && skuTaken(&tx.state, sku, p.ID) {
			return invalid("sku", "sku %q is already in use", sku)
		}
		p.SKU = sku
	}
	setIf(&p.Description, patch.Description)
	setIf(&p.ShortDescription, patch.ShortDescription)
	setIf(&p.Price, patch.Price)
	setIf(&p.Cost, patch.Cost)
	setIf(&p.TrackQuantity, patch.TrackQuantity)
	setIf(&p.Quantity, patch.Quantity)
	setIf(&p.Weight, patch.Weight)
	setIf(&p.WeightUnit, patch.WeightUnit)
	setIf(&p.Category, patch.Category)
	setIf(&p.Status, patch.Status)
	setIf(&p.Vendor, patch.Vendor)
	setIf(&p.ProductType, patch.ProductType)
	if patch.CompareAtPrice != nil {
		p.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.Barcode != nil {
		p.Barcode = patch.Barcode
	}
	if patch.SeoTitle != nil {
		p.SeoTitle = patch.SeoTitle
	}
	if patch.SeoDescription != nil {
		p.SeoDescription = patch.SeoDescription
	}
	if patch.Tags != nil {
		p.Tags = normalizeTags(patch.Tags)
	}
	if patch.Image != nil {
		attachImage(tx, &p, *patch.Image)
	}
	p.UpdatedAt = tx.now

	tx.products()[i] = p
	tx.emit(entityProduct, "updated", p.ID)
	c.Updated = p.Clone()
	return nil
}

// DeleteProductCommand removes a product. Historical order items keep their copies.
type DeleteProductCommand struct {
	ID string
}

func (c *DeleteProductCommand) Name() string { return "DeleteProduct" }

func (c *DeleteProductCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Products, func(p models.Product) bool { return p.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityProduct, c.ID)
	}
	return ConfirmRequest{Entity: entityProduct, ID: c.ID, Label: state.Products[i].Name}, nil
}

func (c *DeleteProductCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == c.ID })
	if i < 0 {
		return notFound(entityProduct, c.ID)
	}
	tx.state.Products = removeAt(tx.products(), i)
	tx.emit(entityProduct, "deleted", c.ID)
	return nil
}

// CreateVariantCommand adds a variant to a product
type CreateVariantCommand struct {
	ProductID string
	Input     models.CreateProductVariantRequest

	Created models.ProductVariant
}

func (c *CreateVariantCommand) Name() string { return "CreateVariant" }

func (c *CreateVariantCommand) apply(tx *txn) error {
	in := c.Input
	in.Title = strings.TrimSpace(in.Title)
	in.SKU = strings.TrimSpace(in.SKU)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	i := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == c.ProductID })
	if i < 0 {
		return notFound(entityProduct, c.ProductID)
	}
	sku := strings.TrimSpace(in.SKU)
	if skuTaken(&tx.state, sku, "") {
		return invalid("sku", "sku %q is already in use", sku)
	}
	p := tx.state.Products[i].Clone()
	v := models.ProductVariant{
		ID:             tx.store.newID(),
		ProductID:      p.ID,
		Title:          strings.TrimSpace(in.Title),
		Price:          in.Price,
		CompareAtPrice: in.CompareAtPrice,
		Cost:           in.Cost,
		SKU:            sku,
		Barcode:        in.Barcode,
		Quantity:       in.Quantity,
		Weight:         in.Weight,
		Options:        in.Options,
		Image:          in.Image,
	}
	if v.Options == nil {
		v.Options = map[string]string{}
	}
	p.Variants = append(p.Variants, v)
	p.UpdatedAt = tx.now

	tx.products()[i] = p
	tx.emit(entityVariant, "created", v.ID)
	c.Created = v.Clone()
	return nil
}

// UpdateVariantCommand merges a patch onto a variant of a product
type UpdateVariantCommand struct {
	ProductID string
	VariantID string
	Patch     models.UpdateProductVariantRequest

	Updated models.ProductVariant
}

func (c *UpdateVariantCommand) Name() string { return "UpdateVariant" }

func (c *UpdateVariantCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"title": patch.Title, "sku": patch.SKU}); err != nil {
		return err
	}
	patch.Title = trimmed(patch.Title)
	patch.SKU = trimmed(patch.SKU)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == c.ProductID })
	if i < 0 {
		return notFound(entityProduct, c.ProductID)
	}
	p := tx.state.Products[i].Clone()
	j := findIndex(p.Variants, func(v models.ProductVariant) bool { return v.ID == c.VariantID })
	if j < 0 {
		return notFound(entityVariant, c.VariantID)
	}
	v := p.Variants[j]
	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		if sku != v.SKU && skuTaken(&tx.state, sku, v.ID) {
			return invalid("sku", "sku %q is already in use", sku)
		}
		v.SKU = sku
	}
	setIf(&v.Title, patch.Title)
	setIf(&v.Price, patch.Price)
	setIf(&v.Cost, patch.Cost)
	setIf(&v.Quantity, patch.Quantity)
	setIf(&v.Weight, patch.Weight)
	if patch.CompareAtPrice != nil {
		v.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.Barcode != nil {
		v.Barcode = patch.Barcode
	}
	if patch.Image != nil {
		v.Image = patch.Image
	}
	if patch.Options != nil {
		v.Options = patch.Options
	}
	p.Variants[j] = v
	p.UpdatedAt = tx.now

	tx.products()[i] = p
	tx.emit(entityVariant, "updated", v.ID)
	c.Updated = v.Clone()
	return nil
}

// DeleteVariantCommand removes a variant from its product
type DeleteVariantCommand struct {
	ProductID string
	VariantID string
}

func (c *DeleteVariantCommand) Name() string { return "DeleteVariant" }

func (c *DeleteVariantCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Products, func(p models.Product) bool { return p.ID == c.ProductID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityProduct, c.ProductID)
	}
	j := findIndex(state.Products[i].Variants, func(v models.ProductVariant) bool { return v.ID == c.VariantID })
	if j < 0 {
		return ConfirmRequest{}, notFound(entityVariant, c.VariantID)
	}
	return ConfirmRequest{Entity: entityVariant, ID: c.VariantID, Label: state.Products[i].Variants[j].Title}, nil
}

func (c *DeleteVariantCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Products, func(p models.Product) bool { return p.ID == c.ProductID })
	if i < 0 {
		return notFound(entityProduct, c.ProductID)
	}
	p := tx.state.Products[i].Clone()
	j := findIndex(p.Variants, func(v models.ProductVariant) bool { return v.ID == c.VariantID })
	if j < 0 {
		return notFound(entityVariant, c.VariantID)
	}
	p.Variants = removeAt(p.Variants, j)
	p.UpdatedAt = tx.now

	tx.products()[i] = p
	tx.emit(entityVariant, "deleted", c.VariantID)
	return nil
}

// CreateProduct adds a product and returns the new product collection
func (s *Store) CreateProduct(ctx context.Context, req models.CreateProductRequest) ([]models.Product, error) {
	if err := s.Execute(ctx, &CreateProductCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// UpdateProduct patches a product and returns the new product collection
func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.UpdateProductRequest) ([]models.Product, error) {
	if err := s.Execute(ctx, &UpdateProductCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// DeleteProduct removes a product once confirmed and returns the new product collection
func (s *Store) DeleteProduct(ctx context.Context, id string) ([]models.Product, error) {
	if err := s.Execute(ctx, &DeleteProductCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// CreateVariant adds a variant and returns the new product collection
func (s *Store) CreateVariant(ctx context.Context, productID string, req models.CreateProductVariantRequest) ([]models.Product, error) {
	if err := s.Execute(ctx, &CreateVariantCommand{ProductID: productID, Input: req}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// UpdateVariant patches a variant and returns the new product collection
func (s *Store) UpdateVariant(ctx context.Context, productID, variantID string, patch models.UpdateProductVariantRequest) ([]models.Product, error) {
	if err := s.Execute(ctx, &UpdateVariantCommand{ProductID: productID, VariantID: variantID, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// DeleteVariant removes a variant once confirmed and returns the new product collection
func (s *Store) DeleteVariant(ctx context.Context, productID, variantID string) ([]models.Product, error) {
	if err := s.Execute(ctx, &DeleteVariantCommand{ProductID: productID, VariantID: variantID}); err != nil {
		return nil, err
	}
	return s.Products(), nil
}

// Products returns a copy of the product collection in insertion order
func (s *Store) Products() []models.Product {
	var out []models.Product
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Products, models.Product.Clone) })
	return out
}

// Product returns one product by id
func (s *Store) Product(id string) (models.Product, error) {
	var (
		out models.Product
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Products, func(p models.Product) bool { return p.ID == id })
		if i < 0 {
			err = notFound(entityProduct, id)
			return
		}
		out = state.Products[i].Clone()
	})
	return out, err
}

// skuTaken reports whether sku is used by any product or variant other than exceptID
func skuTaken(state *models.Snapshot, sku, exceptID string) bool {
	for _, p := range state.Products {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
		for _, v := range p.Variants {
			if v.ID != exceptID && strings.EqualFold(v.SKU, sku) {
				return true
			}
		}
	}
	return false
}

func productSlugTaken(state *models.Snapshot, slug, exceptID string) bool {
	return findIndex(state.Products, func(p models.Product) bool { return p.ID != exceptID && p.Slug == slug }) >= 0
}

func attachImage(tx *txn, p *models.Product, img models.ImageUpload) {
	for _, existing := range p.Images {
		if existing == img.URL {
			return
		}
	}
	p.Images = append(p.Images, img.URL)
	alt := img.Alt
	if alt == "" {
		alt = p.Name
	}
	tx.media = append(tx.media, models.Media{
		ID:    tx.store.newID(),
		Title: p.Name,
		Date:  tx.now,
		URL:   img.URL,
		Type:  models.MediaTypeImage,
		Alt:   alt,
	})
}

// normalizeTags trims tags and drops blanks and case-insensitive duplicates
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
