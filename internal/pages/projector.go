package pages

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

const publishTimeout = 10 * time.Second

// Fixed route ids
const (
	RouteShop     = "shop"
	RouteCart     = "cart"
	RouteCheckout = "checkout"
)

// PageDescriptor is a site page derived from storefront state
type PageDescriptor struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Components  []Component `json:"components"`
}

// Source is the state the projector reads from
type Source interface {
	Snapshot() models.Snapshot
	Product(id string) (models.Product, error)
	Page(id string) (models.Page, error)
}

// GenerateResult summarises a GenerateAll run
type GenerateResult struct {
	Published int              `json:"published"`
	Failed    int              `json:"failed"`
	Pages     []PageDescriptor `json:"pages"`
}

// Projector turns products, categories and content pages into site pages
type Projector struct {
	registry Registry
	logger   *logrus.Entry
	wg       sync.WaitGroup
}

// NewProjector creates a projector publishing to registry
func NewProjector(registry Registry, logger *logrus.Logger) *Projector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Projector{
		registry: registry,
		logger:   logger.WithField("component", "page-projector"),
	}
}

// ProjectProduct builds the detail page of a product
func ProjectProduct(p models.Product) PageDescriptor {
	return PageDescriptor{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.ShortDescription,
		URL:         "products/" + p.Slug,
		Components:  []Component{ProductDetailWidget()},
	}
}

// ProjectCategory builds the listing page of a category
func ProjectCategory(c models.Category) PageDescriptor {
	return PageDescriptor{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		URL:         "categories/" + c.Slug,
		Components:  []Component{ProductListWidget(c.Name)},
	}
}

// ProjectPage builds the site page of a content page
func ProjectPage(p models.Page) PageDescriptor {
	description := ""
	if p.MetaDescription != nil {
		description = *p.MetaDescription
	}
	return PageDescriptor{
		ID:          p.ID,
		Name:        p.Name,
		Description: description,
		URL:         p.Slug,
		Components:  []Component{},
	}
}

// FixedRoutes returns the shop, cart and checkout pages
func FixedRoutes(settings models.StoreSettings) []PageDescriptor {
	return []PageDescriptor{
		{
			ID:          RouteShop,
			Name:        "Shop",
			Description: "Browse all products",
			URL:         RouteShop,
			Components:  []Component{ProductListWidget("")},
		},
		{
			ID:          RouteCart,
			Name:        "Shopping Cart",
			Description: "Your shopping cart",
			URL:         RouteCart,
			Components:  []Component{ShoppingCartWidget(settings)},
		},
		{
			ID:          RouteCheckout,
			Name:        "Checkout",
			Description: "Complete your purchase",
			URL:         RouteCheckout,
			Components:  []Component{CheckoutWidget(settings)},
		},
	}
}

// Descriptors projects the whole snapshot: products, categories, content pages, then fixed routes
func Descriptors(snapshot models.Snapshot) []PageDescriptor {
	out := make([]PageDescriptor, 0, len(snapshot.Products)+len(snapshot.Categories)+len(snapshot.Pages)+3)
	for _, p := range snapshot.Products {
		out = append(out, ProjectProduct(p))
	}
	for _, c := range snapshot.Categories {
		out = append(out, ProjectCategory(c))
	}
	for _, p := range snapshot.Pages {
		out = append(out, ProjectPage(p))
	}
	return append(out, FixedRoutes(snapshot.StoreSettings)...)
}

// Publish upserts one page in the registry
func (p *Projector) Publish(ctx context.Context, page PageDescriptor) error {
	if err := p.registry.AddPage(ctx, page); err != nil {
		return fmt.Errorf("publish page %s (%s): %w", page.ID, page.URL, err)
	}
	p.logger.WithFields(logrus.Fields{"page_id": page.ID, "url": page.URL}).Debug("Page published")
	return nil
}

// GenerateAll publishes every projected page. Failures do not stop the run; they are
// joined into the returned error.
func (p *Projector) GenerateAll(ctx context.Context, snapshot models.Snapshot) (GenerateResult, error) {
	descriptors := Descriptors(snapshot)
	result := GenerateResult{Pages: descriptors}
	var errs []error
	for _, d := range descriptors {
		if err := p.Publish(ctx, d); err != nil {
			result.Failed++
			errs = append(errs, err)
			continue
		}
		result.Published++
	}
	p.logger.WithFields(logrus.Fields{"published": result.Published, "failed": result.Failed}).Info("Site pages generated")
	return result, errors.Join(errs...)
}

// ChangeHandler returns a store subscriber that publishes the page of each newly
// created product or content page. Publishing runs off the committing goroutine.
func (p *Projector) ChangeHandler(source Source) func(store.Change) {
	return func(change store.Change) {
		var pending []PageDescriptor
		for _, ev := range change.Events {
			if ev.Action != "created" {
				continue
			}
			switch ev.Entity {
			case "product":
				if prod, err := source.Product(ev.EntityID); err == nil {
					pending = append(pending, ProjectProduct(prod))
				}
			case "page":
				if page, err := source.Page(ev.EntityID); err == nil {
					pending = append(pending, ProjectPage(page))
				}
			}
		}
		if len(pending) == 0 {
			return
		}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			for _, d := range pending {
				if err := p.Publish(ctx, d); err != nil {
					p.logger.WithError(err).Warn("Failed to publish page for new entity")
				}
			}
		}()
	}
}

// Wait blocks until background publishes have finished
func (p *Projector) Wait() {
	p.wg.Wait()
}
