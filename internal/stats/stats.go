// Package stats assembles the aggregate numbers shown on the admin
// dashboard. The dashboard polls these on a fixed interval, so every query
// here is a single round trip.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/order"
)

// fixed until real reviews are collected
const defaultRating = 4.8

type Stats struct {
	TotalOrders     int     `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProducts   int     `json:"total_products"`
	TotalUsers      int     `json:"total_users"`
	TodayOrders     int     `json:"today_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ConfirmedOrders int     `json:"confirmed_orders"`
	PreparingOrders int     `json:"preparing_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	CanceledOrders  int     `json:"canceled_orders"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	WeeklyRevenue   float64 `json:"weekly_revenue"`
	AverageTime     int     `json:"average_time"`
	Rating          float64 `json:"rating"`
	ReturnRate      int     `json:"return_rate"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Stats, error)
}

type service struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewService(db *pgxpool.Pool) Service {
	return &service{db: db, now: time.Now}
}

func (s *service) Dashboard(ctx context.Context) (*Stats, error) {
	st := &Stats{Rating: defaultRating}

	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(final_amount), 0) FROM orders`,
	).Scan(&st.TotalOrders, &st.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to aggregate orders: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE available = true`,
	).Scan(&st.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to count products: %w", err)
	}

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to count users: %w", err)
	}

	now := s.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -7)

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1`, todayStart,
	).Scan(&st.TodayOrders)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to count today's orders: %w", err)
	}

	statusCounts := map[order.OrderStatus]*int{
		order.StatusPending:   &st.PendingOrders,
		order.StatusConfirmed: &st.ConfirmedOrders,
		order.StatusPreparing: &st.PreparingOrders,
		order.StatusDelivered: &st.DeliveredOrders,
		order.StatusCancelled: &st.CanceledOrders,
	}
	for status, dest := range statusCounts {
		err = s.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders WHERE status = $1`, string(status),
		).Scan(dest)
		if err != nil {
			return nil, fmt.Errorf("stats: failed to count %s orders: %w", status, err)
		}
	}

	err = s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(final_amount), 0) FROM orders WHERE created_at >= $1 AND status <> $2`,
		monthStart, string(order.StatusCancelled),
	).Scan(&st.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to aggregate monthly revenue: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(final_amount), 0) FROM orders WHERE created_at >= $1 AND status <> $2`,
		weekStart, string(order.StatusCancelled),
	).Scan(&st.WeeklyRevenue)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to aggregate weekly revenue: %w", err)
	}

	// Mean minutes from order creation to the DELIVERED history entry,
	// over the last 100 delivered orders.
	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(EXTRACT(EPOCH FROM (h.created_at - o.created_at)) / 60)), 0)
		FROM (
			SELECT order_id, created_at
			FROM order_status_history
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT 100
		) h
		JOIN orders o ON o.id = h.order_id
	`, string(order.StatusDelivered)).Scan(&st.AverageTime)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to compute average delivery time: %w", err)
	}

	if st.TotalOrders > 0 {
		st.ReturnRate = int(float64(st.CanceledOrders)/float64(st.TotalOrders)*100 + 0.5)
	}

	log.Debug().Int("total_orders", st.TotalOrders).Msg("stats: dashboard computed")
	return st, nil
}
