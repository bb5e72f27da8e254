package kafka

const (
	EventOrderCreated           = "order.created"
	EventOrderFunded            = "order.funded"
	EventOrderShipped           = "order.shipped"
	EventOrderDeliveryConfirmed = "order.delivery_confirmed"
	EventOrderReleased          = "order.released"
	EventOrderRefunded          = "order.refunded"
	EventOrderCancelled         = "order.cancelled"
	EventOrderAutoReleased      = "order.auto_released"
)

type OrderEvent struct {
	OrderID        uint64 `json:"order_id"`
	Reference      string `json:"reference"`
	Buyer          string `json:"buyer"`
	Seller         string `json:"seller"`
	ProductID      uint64 `json:"product_id"`
	Quantity       uint64 `json:"quantity"`
	Amount         string `json:"amount"`
	PaymentToken   string `json:"payment_token"`
	PaymentMethod  string `json:"payment_method"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ReleasedAmount string `json:"released_amount,omitempty"`
}
