package store

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

const (
	entityCategory   = "category"
	entityCollection = "collection"
)

// CreateCategoryCommand adds a category
type CreateCategoryCommand struct {
	Input models.CreateCategoryRequest

	Created models.Category
}

func (c *CreateCategoryCommand) Name() string { return "CreateCategory" }

func (c *CreateCategoryCommand) apply(tx *txn) error {
	in := c.Input
	in.Name = strings.TrimSpace(in.Name)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	if err := checkParent(&tx.state, "", in.ParentID); err != nil {
		return err
	}
	cat := models.Category{
		ID:          tx.store.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       in.Image,
		ParentID:    in.ParentID,
		IsVisible:   true,
		CreatedAt:   tx.now,
		UpdatedAt:   tx.now,
	}
	setIf(&cat.IsVisible, in.IsVisible)
	cat.Slug = uniqueSlug(Slugify(cat.Name), func(slug string) bool { return categorySlugTaken(&tx.state, slug, "") })

	tx.state.Categories = append(tx.categories(), cat)
	tx.emit(entityCategory, "created", cat.ID)
	c.Created = cat.Clone()
	return nil
}

// UpdateCategoryCommand merges a patch onto a category
type UpdateCategoryCommand struct {
	ID    string
	Patch models.UpdateCategoryRequest

	Updated models.Category
}

func (c *UpdateCategoryCommand) Name() string { return "UpdateCategory" }

func (c *UpdateCategoryCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"name": patch.Name}); err != nil {
		return err
	}
	patch.Name = trimmed(patch.Name)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Categories, func(cat models.Category) bool { return cat.ID == c.ID })
	if i < 0 {
		return notFound(entityCategory, c.ID)
	}
	cat := tx.state.Categories[i].Clone()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != cat.Name {
			cat.Name = name
			cat.Slug = uniqueSlug(Slugify(name), func(slug string) bool { return categorySlugTaken(&tx.state, slug, cat.ID) })
		}
	}
	if patch.ParentID != nil {
		if err := checkParent(&tx.state, cat.ID, patch.ParentID); err != nil {
			return err
		}
		if *patch.ParentID == "" {
			cat.ParentID = nil
		} else {
			cat.ParentID = patch.ParentID
		}
	}
	setIf(&cat.Description, patch.Description)
	setIf(&cat.IsVisible, patch.IsVisible)
	if patch.Image != nil {
		cat.Image = patch.Image
	}
	cat.UpdatedAt = tx.now

	tx.categories()[i] = cat
	tx.emit(entityCategory, "updated", cat.ID)
	c.Updated = cat.Clone()
	return nil
}

// DeleteCategoryCommand removes a category. Products keep their category name.
type DeleteCategoryCommand struct {
	ID string
}

func (c *DeleteCategoryCommand) Name() string { return "DeleteCategory" }

func (c *DeleteCategoryCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Categories, func(cat models.Category) bool { return cat.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityCategory, c.ID)
	}
	return ConfirmRequest{Entity: entityCategory, ID: c.ID, Label: state.Categories[i].Name}, nil
}

func (c *DeleteCategoryCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Categories, func(cat models.Category) bool { return cat.ID == c.ID })
	if i < 0 {
		return notFound(entityCategory, c.ID)
	}
	tx.state.Categories = removeAt(tx.categories(), i)
	tx.emit(entityCategory, "deleted", c.ID)
	return nil
}

// CreateCollectionCommand adds a rule-based collection
type CreateCollectionCommand struct {
	Input models.CreateCollectionRequest

	Created models.Collection
}

func (c *CreateCollectionCommand) Name() string { return "CreateCollection" }

func (c *CreateCollectionCommand) apply(tx *txn) error {
	in := c.Input
	in.Name = strings.TrimSpace(in.Name)
	if err := tx.store.validate(&in); err != nil {
		return err
	}
	col := models.Collection{
		ID:          tx.store.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       in.Image,
		Conditions:  append([]models.CollectionCondition{}, in.Conditions...),
		IsVisible:   true,
		SortOrder:   in.SortOrder,
		CreatedAt:   tx.now,
		UpdatedAt:   tx.now,
	}
	setIf(&col.IsVisible, in.IsVisible)
	col.Slug = uniqueSlug(Slugify(col.Name), func(slug string) bool { return collectionSlugTaken(&tx.state, slug, "") })

	tx.state.Collections = append(tx.collections(), col)
	tx.emit(entityCollection, "created", col.ID)
	c.Created = col.Clone()
	return nil
}

// UpdateCollectionCommand merges a patch onto a collection
type UpdateCollectionCommand struct {
	ID    string
	Patch models.UpdateCollectionRequest

	Updated models.Collection
}

func (c *UpdateCollectionCommand) Name() string { return "UpdateCollection" }

func (c *UpdateCollectionCommand) apply(tx *txn) error {
	patch := c.Patch
	if err := nonBlank(map[string]*string{"name": patch.Name}); err != nil {
		return err
	}
	patch.Name = trimmed(patch.Name)
	if err := tx.store.validate(&patch); err != nil {
		return err
	}
	i := findIndex(tx.state.Collections, func(col models.Collection) bool { return col.ID == c.ID })
	if i < 0 {
		return notFound(entityCollection, c.ID)
	}
	col := tx.state.Collections[i].Clone()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != col.Name {
			col.Name = name
			col.Slug = uniqueSlug(Slugify(name), func(slug string) bool { return collectionSlugTaken(&tx.state, slug, col.ID) })
		}
	}
	setIf(&col.Description, patch.Description)
	setIf(&col.IsVisible, patch.IsVisible)
	setIf(&col.SortOrder, patch.SortOrder)
	if patch.Image != nil {
		col.Image = patch.Image
	}
	if patch.Conditions != nil {
		col.Conditions = append([]models.CollectionCondition{}, patch.Conditions...)
	}
	col.UpdatedAt = tx.now

	tx.collections()[i] = col
	tx.emit(entityCollection, "updated", col.ID)
	c.Updated = col.Clone()
	return nil
}

// DeleteCollectionCommand removes a collection
type DeleteCollectionCommand struct {
	ID string
}

func (c *DeleteCollectionCommand) Name() string { return "DeleteCollection" }

func (c *DeleteCollectionCommand) target(state *models.Snapshot) (ConfirmRequest, error) {
	i := findIndex(state.Collections, func(col models.Collection) bool { return col.ID == c.ID })
	if i < 0 {
		return ConfirmRequest{}, notFound(entityCollection, c.ID)
	}
	return ConfirmRequest{Entity: entityCollection, ID: c.ID, Label: state.Collections[i].Name}, nil
}

func (c *DeleteCollectionCommand) apply(tx *txn) error {
	i := findIndex(tx.state.Collections, func(col models.Collection) bool { return col.ID == c.ID })
	if i < 0 {
		return notFound(entityCollection, c.ID)
	}
	tx.state.Collections = removeAt(tx.collections(), i)
	tx.emit(entityCollection, "deleted", c.ID)
	return nil
}

// checkParent rejects unknown parents and parent chains that loop back to id
func checkParent(state *models.Snapshot, id string, parentID *string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	seen := map[string]bool{id: true}
	next := *parentID
	for next != "" {
		if seen[next] {
			return invalid("parentId", "category cannot be its own ancestor")
		}
		seen[next] = true
		i := findIndex(state.Categories, func(cat models.Category) bool { return cat.ID == next })
		if i < 0 {
			return invalid("parentId", "parent category %q does not exist", next)
		}
		next = ""
		if p := state.Categories[i].ParentID; p != nil {
			next = *p
		}
	}
	return nil
}

func categorySlugTaken(state *models.Snapshot, slug, exceptID string) bool {
	return findIndex(state.Categories, func(c models.Category) bool { return c.ID != exceptID && c.Slug == slug }) >= 0
}

func collectionSlugTaken(state *models.Snapshot, slug, exceptID string) bool {
	return findIndex(state.Collections, func(c models.Collection) bool { return c.ID != exceptID && c.Slug == slug }) >= 0
}

// CreateCategory adds a category and returns the new category collection
func (s *Store) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) ([]models.Category, error) {
	if err := s.Execute(ctx, &CreateCategoryCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Categories(), nil
}

// UpdateCategory patches a category and returns the new category collection
func (s *Store) UpdateCategory(ctx context.Context, id string, patch models.UpdateCategoryRequest) ([]models.Category, error) {
	if err := s.Execute(ctx, &UpdateCategoryCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Categories(), nil
}

// DeleteCategory removes a category once confirmed and returns the new category collection
func (s *Store) DeleteCategory(ctx context.Context, id string) ([]models.Category, error) {
	if err := s.Execute(ctx, &DeleteCategoryCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Categories(), nil
}

// CreateCollection adds a collection and returns the new collection list
func (s *Store) CreateCollection(ctx context.Context, req models.CreateCollectionRequest) ([]models.Collection, error) {
	if err := s.Execute(ctx, &CreateCollectionCommand{Input: req}); err != nil {
		return nil, err
	}
	return s.Collections(), nil
}

// UpdateCollection patches a collection and returns the new collection list
func (s *Store) UpdateCollection(ctx context.Context, id string, patch models.UpdateCollectionRequest) ([]models.Collection, error) {
	if err := s.Execute(ctx, &UpdateCollectionCommand{ID: id, Patch: patch}); err != nil {
		return nil, err
	}
	return s.Collections(), nil
}

// DeleteCollection removes a collection once confirmed and returns the new collection list
func (s *Store) DeleteCollection(ctx context.Context, id string) ([]models.Collection, error) {
	if err := s.Execute(ctx, &DeleteCollectionCommand{ID: id}); err != nil {
		return nil, err
	}
	return s.Collections(), nil
}

// Categories returns a copy of the category collection
func (s *Store) Categories() []models.Category {
	var out []models.Category
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Categories, models.Category.Clone) })
	return out
}

// Category returns one category by id
func (s *Store) Category(id string) (models.Category, error) {
	var (
		out models.Category
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Categories, func(c models.Category) bool { return c.ID == id })
		if i < 0 {
			err = notFound(entityCategory, id)
			return
		}
		out = state.Categories[i].Clone()
	})
	return out, err
}

// Collections returns a copy of the collection list
func (s *Store) Collections() []models.Collection {
	var out []models.Collection
	s.read(func(state *models.Snapshot) { out = models.CloneSlice(state.Collections, models.Collection.Clone) })
	return out
}

// Collection returns one collection by id
func (s *Store) Collection(id string) (models.Collection, error) {
	var (
		out models.Collection
		err error
	)
	s.read(func(state *models.Snapshot) {
		i := findIndex(state.Collections, func(c models.Collection) bool { return c.ID == id })
		if i < 0 {
			err = notFound(entityCollection, id)
			return
		}
		out = state.Collections[i].Clone()
	})
	return out, err
}
