package services

import (
	"context"
	"time"

	"github.com/localnerve/shopfloor/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DashboardStats is the API output for the dashboard
type DashboardStats struct {
	TotalOrders      int64            `json:"totalOrders"`
	ActiveOrders     int64            `json:"activeOrders"`
	CompletedOrders  int64            `json:"completedOrders"`
	OverdueOrders    int64            `json:"overdueOrders"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus,omitempty"`
	OrdersByPriority map[string]int64 `json:"ordersByPriority,omitempty"`
}

type groupCount struct {
	GroupKey string
	Total    int64
}

// GetDashboardStats returns order counters. Without aggregate all counters are zero.
func GetDashboardStats(ctx context.Context, db *gorm.DB, aggregate bool) (DashboardStats, error) {
	if !aggregate {
		return DashboardStats{}, nil
	}

	var stats DashboardStats
	orders := func() *gorm.DB {
		return db.WithContext(ctx).
			Clauses(hints.CommentBefore("select", "dashboard:stats")).
			Model(&models.Order{})
	}

	if err := orders().Count(&stats.TotalOrders).Error; err != nil {
		return stats, err
	}
	if err := orders().Where("status IN ?", models.ActiveOrderStatuses).Count(&stats.ActiveOrders).Error; err != nil {
		return stats, err
	}
	if err := orders().Where("status IN ?", models.CompletedOrderStatuses).Count(&stats.CompletedOrders).Error; err != nil {
		return stats, err
	}
	if err := orders().
		Where("deadline IS NOT NULL AND deadline < ?", time.Now().UTC()).
		Where("status NOT IN ?", models.CompletedOrderStatuses).
		Count(&stats.OverdueOrders).Error; err != nil {
		return stats, err
	}

	var err error
	if stats.OrdersByStatus, err = countBy(orders(), "status"); err != nil {
		return stats, err
	}
	if stats.OrdersByPriority, err = countBy(orders(), "priority"); err != nil {
		return stats, err
	}

	return stats, nil
}

// countBy groups orders on column, which must be a trusted identifier
func countBy(query *gorm.DB, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := query.Select(column + " AS group_key, COUNT(*) AS total").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out, nil
}
