package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const StatusPending = "Pending"

type Order struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	CustomerID uuid.UUID
	Status     string
	OrderDate  time.Time

	// Product is set when the order was loaded with product details.
	Product *Product
}

// NewOrder builds a pending order placed now. The date is cut to the
// microsecond precision Postgres stores.
func NewOrder(productID, customerID uuid.UUID, now time.Time) Order {
	return Order{
		ID:         uuid.New(),
		ProductID:  productID,
		CustomerID: customerID,
		Status:     StatusPending,
		OrderDate:  now.UTC().Truncate(time.Microsecond),
	}
}

type Product struct {
	ID       uuid.UUID
	SellerID uuid.UUID
	Name     string
}

type OrderDto struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	CustomerID  uuid.UUID `json:"customerId"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
}

func (o Order) ToDto() OrderDto {
	dto := OrderDto{
		ID:         o.ID,
		ProductID:  o.ProductID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		OrderDate:  o.OrderDate,
	}
	if o.Product != nil {
		dto.ProductName = o.Product.Name
	}
	return dto
}

func toDtos(orders []Order) []OrderDto {
	dtos := make([]OrderDto, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, o.ToDto())
	}
	return dtos
}

type CreateOrderRequest struct {
	ProductID  uuid.UUID `json:"productId"`
	CustomerID uuid.UUID `json:"customerId"`
}

type UpdateOrderStatusRequest struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type OrdersQuery struct {
	IDs         []uuid.UUID
	CustomerIDs []uuid.UUID
	SellerIDs   []uuid.UUID
	SortBy      *string
	SortOrder   *string
}

func (o *OrdersQuery) Validate() error {
	if o.SortBy != nil && *o.SortBy != "order_date" && *o.SortBy != "status" {
		return fmt.Errorf("invalid sort by: %s", *o.SortBy)
	}
	if o.SortOrder != nil && *o.SortOrder != "asc" && *o.SortOrder != "desc" {
		return fmt.Errorf("invalid sort order: %s", *o.SortOrder)
	}
	return nil
}

type OrdersQueryBuilder struct {
	query *OrdersQuery
}

func NewOrdersQueryBuilder() *OrdersQueryBuilder {
	return &OrdersQueryBuilder{
		query: &OrdersQuery{},
	}
}

func (b *OrdersQueryBuilder) Build() (*OrdersQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}
	return b.query, nil
}

func (b *OrdersQueryBuilder) WithIDs(ids ...uuid.UUID) *OrdersQueryBuilder {
	b.query.IDs = ids
	return b
}

func (b *OrdersQueryBuilder) WithCustomerIDs(ids ...uuid.UUID) *OrdersQueryBuilder {
	b.query.CustomerIDs = ids
	return b
}

func (b *OrdersQueryBuilder) WithSellerIDs(ids ...uuid.UUID) *OrdersQueryBuilder {
	b.query.SellerIDs = ids
	return b
}

func (b *OrdersQueryBuilder) WithSort(sortBy, sortOrder string) *OrdersQueryBuilder {
	b.query.SortBy = &sortBy
	b.query.SortOrder = &sortOrder
	return b
}
