package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/swenautos/escrow-service/internal/usecase/order"
)

// AutoReleaseKeeper periodically sweeps delivered orders past their
// deadline and releases the escrow to the seller.
type AutoReleaseKeeper struct {
	orders   order.OrderUsecase
	interval time.Duration
}

func NewAutoReleaseKeeper(orders order.OrderUsecase, interval time.Duration) *AutoReleaseKeeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &AutoReleaseKeeper{orders: orders, interval: interval}
}

func (k *AutoReleaseKeeper) Start(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	slog.Info("Starting auto-release keeper", "interval", k.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping auto-release keeper")
			return
		case <-ticker.C:
			if err := k.orders.AutoReleaseEligibleOrders(ctx); err != nil {
				slog.Error("Auto-release sweep failed", "error", err.Error())
			}
		}
	}
}
