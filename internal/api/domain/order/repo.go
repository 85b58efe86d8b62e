package order

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source repo.go -destination mock_repo.go -package order

type OrderRepo interface {
	TxOrderRepo
	InTransaction(ctx context.Context, fn func(repo TxOrderRepo) error) error
}

type TxOrderRepo interface {
	CreateOrder(ctx context.Context, o Order) error
	// GetOrders returns orders joined with their product details.
	GetOrders(ctx context.Context, query *OrdersQuery) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type ProductRepo interface {
	// GetProductByID returns nil without error when the product does not exist.
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
