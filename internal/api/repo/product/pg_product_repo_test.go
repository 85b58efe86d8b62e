package product_repo

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	newRepo := func(t *testing.T) (pgxmock.PgxPoolIface, *PgProductRepo) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		t.Cleanup(mock.Close)
		return mock, &PgProductRepo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	}

	t.Run("should return product", func(t *testing.T) {
		mock, repo := newRepo(t)
		sellerID := uuid.New()

		mock.ExpectQuery(`SELECT id, seller_id, name FROM products WHERE id = \$1`).
			WithArgs(productID.String()).
			WillReturnRows(mock.NewRows([]string{"id", "seller_id", "name"}).AddRow(productID, sellerID, "Kettle"))

		product, err := repo.GetProductByID(ctx, productID)

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, sellerID, product.SellerID)
		assert.Equal(t, "Kettle", product.Name)
	})

	t.Run("should return nil when product is missing", func(t *testing.T) {
		mock, repo := newRepo(t)

		mock.ExpectQuery(`SELECT id, seller_id, name FROM products WHERE id = \$1`).
			WithArgs(productID.String()).
			WillReturnError(pgx.ErrNoRows)

		product, err := repo.GetProductByID(ctx, productID)

		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("should handle database error", func(t *testing.T) {
		mock, repo := newRepo(t)

		mock.ExpectQuery(`SELECT id, seller_id, name FROM products`).
			WithArgs(productID.String()).
			WillReturnError(assert.AnError)

		product, err := repo.GetProductByID(ctx, productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
