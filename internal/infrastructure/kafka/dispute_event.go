package kafka

const (
	EventDisputeOpened   = "dispute.opened"
	EventDisputeResolved = "dispute.resolved"
)

type DisputeEvent struct {
	DisputeID     uint64 `json:"dispute_id"`
	OrderID       uint64 `json:"order_id"`
	Initiator     string `json:"initiator"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	Arbitrator    string `json:"arbitrator,omitempty"`
	BuyerRelease  string `json:"buyer_release,omitempty"`
	SellerRelease string `json:"seller_release,omitempty"`
}
