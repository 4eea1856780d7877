package dto

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateOrderRequest is the request body for order creation.
type CreateOrderRequest struct {
	ServiceID     string            `json:"serviceId" binding:"required,safe_id"`
	FileID        string            `json:"fileId" binding:"required,uuid"`
	FileName      string            `json:"fileName" binding:"required,max=255"`
	CustomerEmail string            `json:"customerEmail" binding:"required,email"`
	CustomerName  string            `json:"customerName" binding:"max=200"`
	Quantity      int               `json:"quantity"`
	ExtraFields   map[string]string `json:"extraFields,omitempty"`
}

// CreateOrderResponse is the response body for a created order.
type CreateOrderResponse struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ServiceName string  `json:"serviceName"`
	ServiceType string  `json:"serviceType"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
}

// UploadResponse is the response body for a stored upload.
type UploadResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Checksum string `json:"checksum"`
}

// CaptureRequest is the gateway-reported capture outcome.
type CaptureRequest struct {
	CaptureRef string  `json:"captureRef" binding:"required,max=100"`
	Status     string  `json:"status" binding:"required,oneof=completed failed"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Reason     string  `json:"reason,omitempty"`
}

// RefundRequest is the request body for an admin refund.
type RefundRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// BatchProcessRequest is the request body for batch fulfillment triggering.
type BatchProcessRequest struct {
	OrderIDs []string `json:"orderIds" binding:"required"`
}

// RegisterWebhookRequest is the request body for webhook registration.
type RegisterWebhookRequest struct {
	URL        string   `json:"url" binding:"required,safe_url"`
	EventTypes []string `json:"eventTypes" binding:"required"`
	Secret     string   `json:"secret,omitempty"`
}

// UpdateWebhookRequest is the request body for a partial webhook update.
type UpdateWebhookRequest struct {
	URL        *string  `json:"url,omitempty"`
	EventTypes []string `json:"eventTypes,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

// WebhookResponse is the listing view of a subscription. Secret is only set
// on the registration response.
type WebhookResponse struct {
	WebhookID     string   `json:"webhookId"`
	URL           string   `json:"url"`
	EventTypes    []string `json:"eventTypes"`
	Secret        string   `json:"secret,omitempty"`
	Active        bool     `json:"active"`
	LastTriggered *string  `json:"lastTriggered,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// OrderListResponse wraps a paginated admin order listing.
type OrderListResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
