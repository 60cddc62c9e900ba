package adminController

import (
	"context"
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardStats is the admin dashboard summary. Field names follow the
// storefront's camelCase contract.
type DashboardStats struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalUsers    int64           `json:"totalUsers"`
	TotalOrders   int64           `json:"totalOrders"`
	Revenue       decimal.Decimal `json:"revenue"`
	PendingOrders int64           `json:"pendingOrders"`
	LowStockItems int64           `json:"lowStockItems"`
}

// Stats runs the dashboard counts concurrently. Stock is not tracked, so
// LowStockItems is always zero.
func Stats(ctx context.Context, db *gorm.DB) (*DashboardStats, error) {
	var stats DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(model any, dst *int64, query ...any) {
		g.Go(func() error {
			q := db.WithContext(ctx).Model(model)
			if len(query) > 0 {
				q = q.Where(query[0], query[1:]...)
			}
			return q.Count(dst).Error
		})
	}
	count(&models.Product{}, &stats.TotalProducts)
	count(&models.User{}, &stats.TotalUsers)
	count(&models.Order{}, &stats.TotalOrders)
	count(&models.Order{}, &stats.PendingOrders, "status = ?", models.OrderStatusPending)

	g.Go(func() error {
		var sum decimal.NullDecimal
		err := db.WithContext(ctx).Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").
			Row().Scan(&sum)
		if err != nil {
			return err
		}
		stats.Revenue = sum.Decimal.Round(2)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err, "Failed to load stats")
	}
	return &stats, nil
}

// GET /api/admin/stats
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := Stats(c.Request.Context(), db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
