package pages

import "storefront-service/internal/models"

const (
	componentTypePlugin = "plugin"
	pluginName          = "E-commerce"
)

// Widget identifiers understood by the site builder
const (
	WidgetProductList   = "wx-product-list"
	WidgetProductDetail = "wx-product-detail"
	WidgetShoppingCart  = "wx-shopping-cart"
	WidgetCheckout      = "wx-checkout"
)

// Setting is one configurable property of a builder widget
type Setting struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Value       interface{} `json:"value"`
	Description string      `json:"description,omitempty"`
}

// Component is a builder widget placed on a page
type Component struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PluginName string    `json:"pluginName"`
	Plugin     string    `json:"plugin"`
	Content    string    `json:"content"`
	Settings   []Setting `json:"settings"`
}

// Setting returns the value of the named setting, or nil
func (c Component) Setting(name string) interface{} {
	for _, s := range c.Settings {
		if s.Name == name {
			return s.Value
		}
	}
	return nil
}

func widget(id, plugin, content string, settings ...Setting) Component {
	return Component{
		ID:         id,
		Type:       componentTypePlugin,
		PluginName: pluginName,
		Plugin:     plugin,
		Content:    content,
		Settings:   settings,
	}
}

func boolSetting(name, description string, v bool) Setting {
	return Setting{Name: name, Type: "boolean", Value: v, Description: description}
}

// ProductListWidget renders a product grid, optionally limited to one category
func ProductListWidget(category string) Component {
	return widget(WidgetProductList, "product-grid", "Product List",
		Setting{Name: "Category", Type: "string", Value: category, Description: "Filter by category"},
		Setting{Name: "ProductsPerPage", Type: "number", Value: "12", Description: "Number of products to show"},
		boolSetting("ShowPrice", "Show product price", true),
		boolSetting("ShowAddToCart", "Show add to cart button", true),
	)
}

// ProductDetailWidget renders a single product
func ProductDetailWidget() Component {
	return widget(WidgetProductDetail, "product-detail", "Product Detail",
		boolSetting("ShowRelatedProducts", "Show related products", true),
		boolSetting("ShowReviews", "Show product reviews", true),
		boolSetting("EnableZoom", "Enable image zoom", true),
	)
}

// ShoppingCartWidget renders the cart. Shipping estimates follow the store settings.
func ShoppingCartWidget(settings models.StoreSettings) Component {
	return widget(WidgetShoppingCart, "shopping-cart", "Shopping Cart",
		boolSetting("EnableCoupons", "Enable coupon codes", true),
		boolSetting("ShowShipping", "Show shipping calculator", settings.EnableShipping),
	)
}

// CheckoutWidget renders the checkout form
func CheckoutWidget(settings models.StoreSettings) Component {
	return widget(WidgetCheckout, "checkout", "Checkout",
		boolSetting("EnableGuestCheckout", "Allow guest checkout", settings.EnableGuestCheckout),
		boolSetting("RequirePhone", "Require phone number", settings.RequirePhoneNumber),
	)
}
