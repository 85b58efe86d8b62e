package order_repo

import (
	"context"
	"testing"
	"time"

	"MockECommerce/internal/api/domain/order"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectOrders = `SELECT o.id, o.product_id, o.customer_id, o.status, o.order_date, p.name, p.seller_id FROM orders o JOIN products p ON p.id = o.product_id`

var orderColumns = []string{"id", "product_id", "customer_id", "status", "order_date", "name", "seller_id"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PgOrderRepo) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, newPgOrderRepo(mock, squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar))
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("should return orders joined with product details", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		orderID := uuid.New()
		productID := uuid.New()
		customerID := uuid.New()
		sellerID := uuid.New()
		orderDate := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		rows := mock.NewRows(orderColumns).
			AddRow(orderID, productID, customerID, "Pending", orderDate, "Coffee grinder", sellerID)

		mock.ExpectQuery(selectOrders + ` WHERE o.id IN \(\$1\)`).
			WithArgs(orderID).
			WillReturnRows(rows)

		query, err := order.NewOrdersQueryBuilder().WithIDs(orderID).Build()
		require.NoError(t, err)

		result, err := repo.GetOrders(ctx, query)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, orderID, result[0].ID)
		assert.Equal(t, customerID, result[0].CustomerID)
		assert.Equal(t, "Pending", result[0].Status)
		assert.Equal(t, orderDate, result[0].OrderDate)
		require.NotNil(t, result[0].Product)
		assert.Equal(t, "Coffee grinder", result[0].Product.Name)
		assert.Equal(t, sellerID, result[0].Product.SellerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should filter by seller and sort newest first", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		sellerID := uuid.New()

		mock.ExpectQuery(selectOrders + ` WHERE p.seller_id IN \(\$1\) ORDER BY o.order_date desc`).
			WithArgs(sellerID).
			WillReturnRows(mock.NewRows(orderColumns))

		query, err := order.NewOrdersQueryBuilder().WithSellerIDs(sellerID).WithSort("order_date", "desc").Build()
		require.NoError(t, err)

		result, err := repo.GetOrders(ctx, query)

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should filter by customer", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		customerID := uuid.New()

		mock.ExpectQuery(selectOrders + ` WHERE o.customer_id IN \(\$1\)`).
			WithArgs(customerID).
			WillReturnRows(mock.NewRows(orderColumns))

		query, err := order.NewOrdersQueryBuilder().WithCustomerIDs(customerID).Build()
		require.NoError(t, err)

		_, err = repo.GetOrders(ctx, query)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should handle database error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(selectOrders).WillReturnError(assert.AnError)

		result, err := repo.GetOrders(ctx, &order.OrdersQuery{})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "query orders")
	})
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	o := order.NewOrder(uuid.New(), uuid.New(), time.Now())

	t.Run("should insert order", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`INSERT INTO orders \(id,product_id,customer_id,status,order_date\) VALUES \(\$1,\$2,\$3,\$4,\$5\)`).
			WithArgs(o.ID, o.ProductID, o.CustomerID, order.StatusPending, o.OrderDate).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.CreateOrder(ctx, o)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should handle database error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`INSERT INTO orders`).WillReturnError(assert.AnError)

		err := repo.CreateOrder(ctx, o)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert order")
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("should update status", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE id = \$2`).
			WithArgs("Shipped", orderID.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateOrderStatus(ctx, orderID, "Shipped")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should handle database error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE id = \$2`).
			WillReturnError(assert.AnError)

		err := repo.UpdateOrderStatus(ctx, orderID, "Shipped")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "update order status")
	})
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs(orderID.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.DeleteOrder(ctx, orderID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("should run statements on the transaction and commit", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		orderID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
			WithArgs(orderID.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err := repo.InTransaction(ctx, func(tx order.TxOrderRepo) error {
			return tx.DeleteOrder(ctx, orderID)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should rollback and return the function error unchanged", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.InTransaction(ctx, func(order.TxOrderRepo) error {
			return order.ErrOrderNotFound
		})

		assert.Equal(t, order.ErrOrderNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should handle begin transaction error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		err := repo.InTransaction(ctx, func(order.TxOrderRepo) error { return nil })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin transaction")
	})

	t.Run("should handle commit error", func(t *testing.T) {
		mock, repo := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(assert.AnError)

		err := repo.InTransaction(ctx, func(order.TxOrderRepo) error { return nil })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit transaction")
	})
}
