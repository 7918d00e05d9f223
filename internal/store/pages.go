package store

import (
	"context"
	"slices"
	"strings"

	"storefront-service/internal/models"
)

const entityPage = "page"

// CreatePageCommand adds a content page. The slug is derived from Slug when given, else Name.
type CreatePageCommand struct {
	Input models.CreatePageRequest

	Created models.Page
}

func (c *CreatePageCommand) Name() string { return "CreatePage" }

func (c *CreatePageCommand) apply(tx *txn) error {
	in := c.Input
	in.Name = strings.TrimSpace(in.Name)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	page := models.Page{
		ID:              tx.store.newID(),
		Name:            strings.TrimSpace(in.Name),
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		IsPublished:     in.IsPublished,
		Template:        in.Template,
		CreatedAt:       tx.now,
		UpdatedAt:       tx.now,
	}
	if page.Template == "" {
		page.Template = models.PageTemplateDefault
	}
	base := Slugify(in.Slug)
	if base == "" {
		base = Slugify(page.Name)
	}
	page.Slug = uniqueSlug(base, func(slug string) bool { return pageSlugTaken(&tx.state, slug, "") })

	tx.state.Pages = append(tx.pages(), page)
	tx.emit(entityPage, "created", page.ID)
	c.Created = page.Clone()
	return nil
}

// UpdatePageCommand merges a patch onto a page
type UpdatePageCommand struct {
	ID    string
	Patch models.UpdatePageRequest

	Updated models.Page
}

func (c *UpdatePageCommand) Name() string { return "UpdatePage" }

func (c *UpdatePageCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"name": patch.Name}); err != nil {
		return err
	}
	patch.Name = trimmed(patch.Name)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Pages, func(p models.Page) bool { return p.ID == c.ID })
	if i < 0 {
		return notFound(entityPage, c.ID)
	}
	page := tx.state.Pages[i].Clone()
	taken := func(slug string) bool { return pageSlugTaken(&tx.state, slug, page.ID) }
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != page.Name {
			page.Name = name
			if patch.Slug == nil {
				page.Slug = uniqueSlug(Slugify(name), taken)
			}
		}
	}
	if patch.Slug != nil {
		base := Slugify(*patch.Slug)
		if base == "" {
			base = Slugify(page.Name)
		}
		page.Slug = uniqueSlug(base, taken)
	}
	setIf(&page.Content, patch.Content)
	setIf(&page.IsPublished, patch.IsPublished)
	setIf(&page.Template, patch.Template)
	if patch.MetaTitle != nil {
		page.MetaTitle = patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		page.MetaDescription = patch.MetaDescription
	}
	page.UpdatedAt = tx.now

	tx.pages()[i] = page
	tx.emit(entityPage, "updated", page.ID)
	c.Updated = page.Clone()
	return nil
}

// DeletePageCommand removes a page
type DeletePageCommand struct {
	ID string
}

func (c *DeletePageCommand) Name() string { return "DeletePage" }

func (c *DeletePageCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Pages, func(p models.Page) bool { return p.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityPage, c.ID)
	}
	return ConfirmRequest{Entity: entityPage, ID: c.ID, Label: state.Pages[i].Name}, nil
}

func (c *DeletePageCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Pages, func(p models.Page) bool { return p.ID == c.ID })
	if i < 0 {
		return notFound(entityPage, c.ID)
	}
	tx.state.Pages = removeAt(tx.pages(), i)
	tx.emit(entityPage, "deleted", c.ID)
	return nil
}

// ReservedPageSlugs are the site routes content pages may not claim
var ReservedPageSlugs = []string{"shop", "cart", "checkout"}

// IsReservedPageSlug reports whether slug belongs to a fixed site route
func IsReservedPageSlug(slug string) bool {
	return slices.Contains(ReservedPageSlugs, slug)
}

func pageSlugTaken(state *models.Snapshot, slug, exceptID string) bool {
	if IsReservedPageSlug(slug) {
		return true
	}
	return findIndex(state.Pages, func(p models.Page) bool { return p.ID != exceptID && p.Slug == slug }) >= 0
}

// CreatePage adds a page and returns the new page collection
func (s *Store) CreatePage(ctx context.Context, req models.CreatePageRequest) ([]models.Page, error) {
	if err := s.Execute(ctx, &CreatePageCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Pages(), nil
}

// UpdatePage patches a page and returns the new page collection
func (s *Store) UpdatePage(ctx context.Context, id string, patch models.UpdatePageRequest) ([]models.Page, error) {
	if err := s.Execute(ctx, &UpdatePageCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Pages(), nil
}

// DeletePage removes a page once confirmed and returns the new page collection
func (s *Store) DeletePage(ctx context.Context, id string) ([]models.Page, error) {
	if err := s.Execute(ctx, &DeletePageCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Pages(), nil
}

// Pages returns a copy of the page collection
func (s *Store) Pages() []models.Page {
	var out []models.Page
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Pages, models.Page.Clone) })
	return out
}

// Page returns one page by id
func (s *Store) Page(id string) (models.Page, error) {
	var (
		out models.Page
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Pages, func(p models.Page) bool { return p.ID == id })
		if i < 0 {
			err = notFound(entityPage, id)
			return
		}
		out = state.Pages[i].Clone()
	})
	return out, err
}
