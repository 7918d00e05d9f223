package models

import "time"

// Category groups products by their Category field
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	ParentID    *string   `json:"parentId,omitempty"`
	IsVisible   bool      `json:"isVisible"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the category
func (c Category) Clone() Category {
	out := c
	out.Image = cloneString(c.Image)
	out.ParentID = cloneString(c.ParentID)
	return out
}

// CollectionField is the product attribute a collection condition inspects
type CollectionField string

const (
	CollectionFieldTitle  CollectionField = "title"
	CollectionFieldType   CollectionField = "type"
	CollectionFieldVendor CollectionField = "vendor"
	CollectionFieldPrice  CollectionField = "price"
	CollectionFieldTag    CollectionField = "tag"
	CollectionFieldWeight CollectionField = "weight"
)

// CollectionRelation is the comparison applied by a collection condition
type CollectionRelation string

const (
	RelationEquals      CollectionRelation = "equals"
	RelationNotEquals   CollectionRelation = "not_equals"
	RelationStartsWith  CollectionRelation = "starts_with"
	RelationEndsWith    CollectionRelation = "ends_with"
	RelationContains    CollectionRelation = "contains"
	RelationNotContains CollectionRelation = "not_contains"
	RelationGreaterThan CollectionRelation = "greater_than"
	RelationLessThan    CollectionRelation = "less_than"
)

// CollectionCondition is a single rule of a collection
type CollectionCondition struct {
	Field    CollectionField    `json:"field" validate:"required,oneof=title type vendor price tag weight"`
	Relation CollectionRelation `json:"relation" validate:"required,oneof=equals not_equals starts_with ends_with contains not_contains greater_than less_than"`
	Value    string             `json:"value"`
}

// Collection is a rule-based grouping of products
type Collection struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Description string                `json:"description"`
	Image       *string               `json:"image,omitempty"`
	Conditions  []CollectionCondition `json:"conditions"`
	IsVisible   bool                  `json:"isVisible"`
	SortOrder   int                   `json:"sortOrder"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// Clone returns a deep copy of the collection
func (c Collection) Clone() Collection {
	out := c
	out.Image = cloneString(c.Image)
	if c.Conditions != nil {
		out.Conditions = append([]CollectionCondition(nil), c.Conditions...)
	}
	return out
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	IsVisible   *bool   `json:"isVisible,omitempty"`
}

// UpdateCategoryRequest represents a partial update of a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	IsVisible   *bool   `json:"isVisible,omitempty"`
}

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	Image       *string               `json:"image,omitempty"`
	Conditions  []CollectionCondition `json:"conditions,omitempty" validate:"dive"`
	IsVisible   *bool                 `json:"isVisible,omitempty"`
	SortOrder   int                   `json:"sortOrder"`
}

// UpdateCollectionRequest represents a partial update of a collection
type UpdateCollectionRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string               `json:"description,omitempty"`
	Image       *string               `json:"image,omitempty"`
	Conditions  []CollectionCondition `json:"conditions,omitempty" validate:"omitempty,dive"`
	IsVisible   *bool                 `json:"isVisible,omitempty"`
	SortOrder   *int                  `json:"sortOrder,omitempty"`
}
