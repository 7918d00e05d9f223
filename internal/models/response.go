package models

// Response envelopes shared by all handlers

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// ListResponse wraps a collection snapshot with its size
type ListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
}

// SearchResults is the result of a store-wide search
type SearchResults struct {
	Query      string     `json:"query"`
	Products   []Product  `json:"products"`
	Orders     []Order    `json:"orders"`
	Customers  []Customer `json:"customers"`
	Pages      []Page     `json:"pages"`
	Categories []Category `json:"categories"`
	Discounts  []Discount `json:"discounts"`
}
