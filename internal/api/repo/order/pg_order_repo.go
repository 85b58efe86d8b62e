package order_repo

import (
	"context"
	"fmt"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// sortColumns maps query sort keys to qualified columns.
var sortColumns = map[string]string{
	"order_date": "o.order_date",
	"status":     "o.status",
}

type PgOrderRepo struct {
	pool postgres.Pool
	repo
}

func NewPgOrderRepo(pg *postgres.Postgres) order.OrderRepo {
	return newPgOrderRepo(pg.Pool, pg.Builder)
}

func newPgOrderRepo(pool postgres.Pool, builder squirrel.StatementBuilderType) *PgOrderRepo {
	return &PgOrderRepo{
		pool: pool,
		repo: repo{db: pool, builder: builder},
	}
}

func (r *PgOrderRepo) InTransaction(ctx context.Context, fn func(repo order.TxOrderRepo) error) error {
	return postgres.InTx(ctx, r.pool, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) CreateOrder(ctx context.Context, o order.Order) error {
	query, args, err := r.builder.Insert("orders").
		Columns("id", "product_id", "customer_id", "status", "order_date").
		Values(o.ID, o.ProductID, o.CustomerID, o.Status, o.OrderDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *repo) GetOrders(ctx context.Context, query *order.OrdersQuery) ([]order.Order, error) {
	sql, args, err := r.buildOrdersQuery(query)
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	return parseOrderRows(rows)
}

func (r *repo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	query, args, err := r.builder.Update("orders").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *repo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.builder.Delete("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *repo) buildOrdersQuery(q *order.OrdersQuery) (string, []any, error) {
	query := r.builder.
		Select("o.id", "o.product_id", "o.customer_id", "o.status", "o.order_date", "p.name", "p.seller_id").
		From("orders o").
		Join("products p ON p.id = o.product_id")

	if q == nil {
		return query.ToSql()
	}

	if len(q.IDs) > 0 {
		query = query.Where(squirrel.Eq{"o.id": q.IDs})
	}
	if len(q.CustomerIDs) > 0 {
		query = query.Where(squirrel.Eq{"o.customer_id": q.CustomerIDs})
	}
	if len(q.SellerIDs) > 0 {
		query = query.Where(squirrel.Eq{"p.seller_id": q.SellerIDs})
	}

	if q.SortBy != nil && q.SortOrder != nil {
		if column, ok := sortColumns[*q.SortBy]; ok {
			query = query.OrderBy(fmt.Sprintf("%s %s", column, *q.SortOrder))
		}
	}

	return query.ToSql()
}
