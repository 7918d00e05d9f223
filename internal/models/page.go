package models

import "time"

// PageTemplate is the layout template of a content page
type PageTemplate string

const (
	PageTemplateDefault PageTemplate = "default"
	PageTemplateLanding PageTemplate = "landing"
	PageTemplateAbout   PageTemplate = "about"
	PageTemplateContact PageTemplate = "contact"
	PageTemplateCustom  PageTemplate = "custom"
)

// Page represents a content page
type Page struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Slug            string       `json:"slug"`
	Content         string       `json:"content"`
	MetaTitle       *string      `json:"metaTitle,omitempty"`
	MetaDescription *string      `json:"metaDescription,omitempty"`
	IsPublished     bool         `json:"isPublished"`
	Template        PageTemplate `json:"template"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the page
func (p Page) Clone() Page {
	out := p
	out.MetaTitle = cloneString(p.MetaTitle)
	out.MetaDescription = cloneString(p.MetaDescription)
	return out
}

// CreatePageRequest represents a request to create a page
type CreatePageRequest struct {
	Name            string       `json:"name" validate:"required"`
	Slug            string       `json:"slug,omitempty"`
	Content         string       `json:"content"`
	MetaTitle       *string      `json:"metaTitle,omitempty"`
	MetaDescription *string      `json:"metaDescription,omitempty"`
	IsPublished     bool         `json:"isPublished"`
	Template        PageTemplate `json:"template,omitempty" validate:"omitempty,oneof=default landing about contact custom"`
}

// UpdatePageRequest represents a partial update of a page
type UpdatePageRequest struct {
	Name            *string       `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug            *string       `json:"slug,omitempty"`
	Content         *string       `json:"content,omitempty"`
	MetaTitle       *string       `json:"metaTitle,omitempty"`
	MetaDescription *string       `json:"metaDescription,omitempty"`
	IsPublished     *bool         `json:"isPublished,omitempty"`
	Template        *PageTemplate `json:"template,omitempty" validate:"omitempty,oneof=default landing about contact custom"`
}
