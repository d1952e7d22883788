// Package jobs holds the scheduled background jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/metrics"
	"github.com/kicksup/kicksup/pkg/schedule"
)

// StockScanName is the scheduler entry name.
const StockScanName = "stock.scan"

// ScanStock refreshes the low-stock and out-of-stock gauges. Products with
// 1..threshold units count as low.
func ScanStock(products *repositories.ProductRepository, threshold int) schedule.Job {
	return func(ctx context.Context) error {
		low, out, err := products.StockLevels(ctx, threshold)
		if err != nil {
			return fmt.Errorf("stock scan: %w", err)
		}
		metrics.ProductsLowStock.Set(float64(low))
		metrics.ProductsOutOfStock.Set(float64(out))
		if low > 0 || out > 0 {
			logger.Info("stock scan: products need restocking", "low", low, "out", out, "threshold", threshold)
		}
		return nil
	}
}
