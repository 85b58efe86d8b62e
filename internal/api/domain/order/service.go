package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Dependencies struct {
	Orders   OrderRepo
	Products ProductRepo
	// Events may be nil.
	Events EventPublisher
	// History may be nil; GetOrderHistory then fails with ErrHistoryUnavailable.
	History EventHistory
	// Now defaults to time.Now.
	Now func() time.Time
}

type OrderService struct {
	orderRepo   OrderRepo
	productRepo ProductRepo
	events      EventPublisher
	history     EventHistory
	now         func() time.Time
}

func NewOrderService(deps Dependencies) *OrderService {
	s := &OrderService{
		orderRepo:   deps.Orders,
		productRepo: deps.Products,
		events:      deps.Events,
		history:     deps.History,
		now:         deps.Now,
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *OrderService) CreateOrder(ctx context.Context, request CreateOrderRequest) (OrderDto, error) {
	if request.ProductID == uuid.Nil {
		return OrderDto{}, ErrProductNotFound
	}

	product, err := s.productRepo.GetProductByID(ctx, request.ProductID)
	if err != nil {
		return OrderDto{}, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return OrderDto{}, ErrProductNotFound
	}

	if request.CustomerID == uuid.Nil {
		return OrderDto{}, ErrInvalidCustomerID
	}

	o := NewOrder(product.ID, request.CustomerID, s.now())
	if err := s.orderRepo.CreateOrder(ctx, o); err != nil {
		return OrderDto{}, fmt.Errorf("create order: %w", err)
	}
	o.Product = product

	slog.InfoContext(ctx, "Order created",
		"order_id", o.ID,
		"product_id", o.ProductID,
		"customer_id", o.CustomerID)

	dto := o.ToDto()
	s.publish(ctx, EventCreated, dto)
	return dto, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (OrderDto, error) {
	o, err := getOrderByID(ctx, s.orderRepo, id)
	if err != nil {
		return OrderDto{}, err
	}
	return o.ToDto(), nil
}

// GetOrderOwnership returns the customer and seller an order belongs to.
func (s *OrderService) GetOrderOwnership(ctx context.Context, id uuid.UUID) (customerID, sellerID uuid.UUID, err error) {
	o, err := getOrderByID(ctx, s.orderRepo, id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if o.Product != nil {
		sellerID = o.Product.SellerID
	}
	return o.CustomerID, sellerID, nil
}

func getOrderByID(ctx context.Context, repo TxOrderRepo, id uuid.UUID) (Order, error) {
	query, err := NewOrdersQueryBuilder().
		WithIDs(id).
		Build()
	if err != nil {
		return Order{}, fmt.Errorf("build orders query: %w", err)
	}

	orders, err := repo.GetOrders(ctx, query)
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return Order{}, ErrOrderNotFound
	}
	return orders[0], nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]OrderDto, error) {
	query, err := NewOrdersQueryBuilder().
		WithSort("order_date", "desc").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	orders, err := s.orderRepo.GetOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	return toDtos(orders), nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var deleted Order
	err := s.orderRepo.InTransaction(ctx, func(tx TxOrderRepo) error {
		o, err := getOrderByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteOrder(ctx, id); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Order deleted", "order_id", id)
	s.publish(ctx, EventDeleted, deleted.ToDto())
	return nil
}

func (s *OrderService) GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]OrderDto, error) {
	if customerID == uuid.Nil {
		return nil, ErrInvalidCustomerID
	}

	query, err := NewOrdersQueryBuilder().
		WithCustomerIDs(customerID).
		WithSort("order_date", "desc").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	orders, err := s.orderRepo.GetOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get orders for customer %s: %w", customerID, err)
	}
	return toDtos(orders), nil
}

func (s *OrderService) GetOrdersBySellerID(ctx context.Context, sellerID uuid.UUID) ([]OrderDto, error) {
	if sellerID == uuid.Nil {
		return nil, ErrInvalidSellerID
	}

	query, err := NewOrdersQueryBuilder().
		WithSellerIDs(sellerID).
		WithSort("order_date", "desc").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	orders, err := s.orderRepo.GetOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get orders for seller %s: %w", sellerID, err)
	}
	return toDtos(orders), nil
}

// UpdateOrderStatus overwrites the status with the trimmed input. Any
// non-blank status is accepted; transitions are not checked.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, request *UpdateOrderStatusRequest) (OrderDto, error) {
	if request == nil {
		return OrderDto{}, ErrInvalidUpdateData
	}
	if request.ID == uuid.Nil {
		return OrderDto{}, ErrInvalidOrderID
	}
	status := strings.TrimSpace(request.Status)
	if status == "" {
		return OrderDto{}, ErrInvalidOrderStatus
	}

	var updated Order
	err := s.orderRepo.InTransaction(ctx, func(tx TxOrderRepo) error {
		o, err := getOrderByID(ctx, tx, request.ID)
		if err != nil {
			return err
		}

		if err := tx.UpdateOrderStatus(ctx, o.ID, status); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		o.Status = status
		updated = o
		return nil
	})
	if err != nil {
		return OrderDto{}, err
	}

	slog.InfoContext(ctx, "Order status updated", "order_id", updated.ID, "status", status)

	dto := updated.ToDto()
	s.publish(ctx, EventStatusUpdated, dto)
	return dto, nil
}

// GetOrderHistory returns the recorded lifecycle events of an order,
// including orders that have since been deleted.
func (s *OrderService) GetOrderHistory(ctx context.Context, id uuid.UUID) ([]ActivityRecord, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidOrderID
	}
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}

	records, err := s.history.GetOrderEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}
	if records == nil {
		records = []ActivityRecord{}
	}
	return records, nil
}

func (s *OrderService) publish(ctx context.Context, kind EventKind, dto OrderDto) {
	event := Event{
		Kind:       kind,
		Order:      dto,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish order event",
			"kind", kind,
			"order_id", dto.ID,
			slog.Any("error", err))
	}
}
