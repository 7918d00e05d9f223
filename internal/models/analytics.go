package models

// Analytics is a derived snapshot of store metrics; it is never stored
type Analytics struct {
	TotalRevenue      float64          `json:"totalRevenue"`
	TotalOrders       int              `json:"totalOrders"`
	TotalCustomers    int              `json:"totalCustomers"`
	TotalProducts     int              `json:"totalProducts"`
	AverageOrderValue float64          `json:"averageOrderValue"`
	TopProducts       []TopProduct     `json:"topProducts"`
	RecentOrders      []Order          `json:"recentOrders"`
	MonthlyRevenue    []MonthlyRevenue `json:"monthlyRevenue"`
}

// TopProduct is a product ranked by revenue from order items
type TopProduct struct {
	Product Product `json:"product"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Units   int     `json:"units"`
}

// MonthlyRevenue is the revenue of one calendar month, keyed YYYY-MM
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}
