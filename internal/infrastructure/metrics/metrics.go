package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics covers the order lifecycle, disputes and ratings.
type EscrowMetrics struct {
	OrdersCreatedTotal      prometheus.CounterVec
	OrdersFundedTotal       prometheus.CounterVec
	OrdersCompletedTotal    prometheus.CounterVec
	OrdersRefundedTotal     prometheus.CounterVec
	OrdersCancelledTotal    prometheus.CounterVec
	OrdersAutoReleasedTotal prometheus.CounterVec

	DisputesOpenedTotal   prometheus.CounterVec
	DisputesResolvedTotal prometheus.CounterVec

	RatingsSubmittedTotal prometheus.CounterVec

	InventoryReservationFailedTotal prometheus.CounterVec

	EscrowErrorsTotal prometheus.CounterVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_created_total",
				Help: "Total number of orders created",
			},
			[]string{"payment_method", "payment_token"},
		),

		OrdersFundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_funded_total",
				Help: "Total number of orders funded into escrow",
			},
			[]string{"payment_method", "payment_token"},
		),

		OrdersCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_completed_total",
				Help: "Total number of orders completed (released to seller or resolved)",
			},
			[]string{"completion"},
		),

		OrdersRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_refunded_total",
				Help: "Total number of orders refunded to the buyer",
			},
			[]string{"payment_token"},
		),

		OrdersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_cancelled_total",
				Help: "Total number of orders cancelled before funding",
			},
			[]string{"payment_method"},
		),

		OrdersAutoReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_auto_released_total",
				Help: "Total number of orders released by the deadline keeper",
			},
			[]string{"payment_token"},
		),

		DisputesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_opened_total",
				Help: "Total number of disputes opened",
			},
			[]string{"reason"},
		),

		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_resolved_total",
				Help: "Total number of disputes resolved by the arbitrator",
			},
			[]string{"reason"},
		),

		RatingsSubmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_ratings_submitted_total",
				Help: "Total number of buyer ratings submitted",
			},
			[]string{"score"},
		),

		InventoryReservationFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_inventory_reservation_failed_total",
				Help: "Funding attempts rejected because inventory could not be reserved",
			},
			[]string{"product_id"},
		),

		EscrowErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_errors_total",
				Help: "Total number of failed escrow operations by error kind",
			},
			[]string{"operation", "error_kind"},
		),
	}
}

func (m *EscrowMetrics) RecordOrderCreated(paymentMethod, paymentToken string) {
	m.OrdersCreatedTotal.WithLabelValues(paymentMethod, paymentToken).Inc()
}

func (m *EscrowMetrics) RecordOrderFunded(paymentMethod, paymentToken string) {
	m.OrdersFundedTotal.WithLabelValues(paymentMethod, paymentToken).Inc()
}

func (m *EscrowMetrics) RecordOrderCompleted(completion string) {
	m.OrdersCompletedTotal.WithLabelValues(completion).Inc()
}

func (m *EscrowMetrics) RecordOrderRefunded(paymentToken string) {
	m.OrdersRefundedTotal.WithLabelValues(paymentToken).Inc()
}

func (m *EscrowMetrics) RecordOrderCancelled(paymentMethod string) {
	m.OrdersCancelledTotal.WithLabelValues(paymentMethod).Inc()
}

func (m *EscrowMetrics) RecordOrderAutoReleased(paymentToken string) {
	m.OrdersAutoReleasedTotal.WithLabelValues(paymentToken).Inc()
}

func (m *EscrowMetrics) RecordDisputeOpened(reason string) {
	m.DisputesOpenedTotal.WithLabelValues(reason).Inc()
}

func (m *EscrowMetrics) RecordDisputeResolved(reason string) {
	m.DisputesResolvedTotal.WithLabelValues(reason).Inc()
}

func (m *EscrowMetrics) RecordRatingSubmitted(score string) {
	m.RatingsSubmittedTotal.WithLabelValues(score).Inc()
}

func (m *EscrowMetrics) RecordInventoryReservationFailed(productID string) {
	m.InventoryReservationFailedTotal.WithLabelValues(productID).Inc()
}

func (m *EscrowMetrics) RecordError(operation, errorKind string) {
	m.EscrowErrorsTotal.WithLabelValues(operation, errorKind).Inc()
}
