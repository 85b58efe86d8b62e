package order_repo

import (
	"fmt"
	"time"

	"MockECommerce/internal/api/domain/order"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type orderRow struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	CustomerID  uuid.UUID
	Status      string
	OrderDate   time.Time
	ProductName string
	SellerID    uuid.UUID
}

func (m orderRow) toDomain() order.Order {
	return order.Order{
		ID:         m.ID,
		ProductID:  m.ProductID,
		CustomerID: m.CustomerID,
		Status:     m.Status,
		OrderDate:  m.OrderDate.UTC(),
		Product: &order.Product{
			ID:       m.ProductID,
			SellerID: m.SellerID,
			Name:     m.ProductName,
		},
	}
}

func parseOrderRow(row pgx.Row) (order.Order, error) {
	var m orderRow
	err := row.Scan(&m.ID,
		&m.ProductID,
		&m.CustomerID,
		&m.Status,
		&m.OrderDate,
		&m.ProductName,
		&m.SellerID)
	if err != nil {
		return order.Order{}, err
	}
	return m.toDomain(), nil
}

func parseOrderRows(rows pgx.Rows) ([]order.Order, error) {
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := parseOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}
