package model

// ExternalOrder là đơn hàng bên Order Service, chỉ tham chiếu, không lưu ở đây.
type ExternalOrder struct {
	Ref               string      `json:"id"`
	OrderNumber       string      `json:"orderNumber"`
	LocationId        uint        `json:"locationId"`
	TenantId          string      `json:"tenantId"`
	TotalAmount       float64     `json:"totalAmount"`
	PaymentStatus     string      `json:"paymentStatus"`     // PENDING, PAID...
	FulfillmentStatus string      `json:"fulfillmentStatus"` // AWAITING_ARRIVAL, CONFIRMED...
	IsGroupHost       bool        `json:"isGroupHost"`
	Items             []OrderItem `json:"items"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
