package product_repo

import (
	"context"
	"errors"
	"fmt"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgProductRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func NewPgProductRepo(pg *postgres.Postgres) order.ProductRepo {
	return &PgProductRepo{db: pg.Pool, builder: pg.Builder}
}

// GetProductByID returns nil without error when the product does not exist.
func (r *PgProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*order.Product, error) {
	query, args, err := r.builder.Select("id", "seller_id", "name").
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}

	var p order.Product
	err = r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.SellerID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}
