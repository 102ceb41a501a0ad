package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface. Checkout and
// cancellation run inside a transaction so stock, order rows and cart state
// move together or not at all.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	activityRepo   repository.ActivityRepository
	eventPublisher service.EventPublisher
	notifier       usecase.NotificationUsecase
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	ActivityRepo   repository.ActivityRepository
	EventPublisher service.EventPublisher
	Notifier       usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		activityRepo:   params.ActivityRepo,
		eventPublisher: params.EventPublisher,
		notifier:       params.Notifier,
		logger:         params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder converts the user's active cart into an order. Inside one
// transaction it decrements stock per line, persists the order with its
// items priced at the current product price, records the payment and
// empties and deactivates the cart. The order.placed event and the
// purchase activity entry are emitted after commit, best-effort.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uint, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.PaymentMethod == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment method must not be empty")
	}

	var placed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		cart, err := cartRepo.FindActiveByUser(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			return domainerrors.ErrEmptyCart.WrapMessage("no active cart to check out")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find active cart")
		}
		if len(cart.Items) == 0 {
			return domainerrors.ErrEmptyCart.WrapMessage("active cart has no items")
		}

		order, err := buildOrderFromCart(ctx, cart, productRepo)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WrapMessage(
						fmt.Sprintf("not enough stock for product %d", item.ProductID))
				}

				return errors.Wrap(err, "failed to adjust stock")
			}
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		payment := &entity.Payment{
			OrderID: order.ID,
			Amount:  order.Total,
			Method:  input.PaymentMethod,
			PaidAt:  time.Now(),
		}
		if err := orderRepo.AddPayment(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to record payment")
		}
		order.Payments = append(order.Payments, *payment)

		if err := cartRepo.ClearItems(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}
		if err := cartRepo.Deactivate(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to deactivate cart")
		}

		placed = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.afterOrderPlaced(ctx, placed)

	return placed, nil
}

// buildOrderFromCart snapshots the cart into an order, pricing every line
// at the product's current price. An order belongs to exactly one shop, so
// a cart whose lines span shops is rejected before any stock moves.
func buildOrderFromCart(ctx context.Context, cart *entity.Cart, productRepo repository.ProductRepository) (*entity.Order, error) {
	order := &entity.Order{
		UserID: cart.UserID,
		Status: entity.OrderStatusPending,
		Items:  make([]entity.OrderItem, 0, len(cart.Items)),
	}

	for _, line := range cart.Items {
		product := line.Product
		if product == nil {
			loaded, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to load product %d", line.ProductID)
			}
			product = loaded
		}

		if order.ShopID == 0 {
			order.ShopID = product.ShopID
		} else if order.ShopID != product.ShopID {
			return nil, domainerrors.ErrMixedShopCart.WrapMessage(
				fmt.Sprintf("product %d belongs to a different shop than the rest of the cart", product.ID))
		}
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		order.Total += product.Price * float64(line.Quantity)
	}

	return order, nil
}

// afterOrderPlaced handles the post-commit side effects of a checkout. All
// of them are best-effort.
func (srv *orderService) afterOrderPlaced(ctx context.Context, order *entity.Order) {
	event := &service.OrderPlacedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID,
		UserID:    order.UserID,
		ShopID:    order.ShopID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		PlacedAt:  order.CreatedAt,
	}
	if err := srv.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order.placed event",
			slog.Uint64("order_id", uint64(order.ID)), slog.Any("error", err))
	}

	activity := &entity.UserActivity{
		UserID:     order.UserID,
		Action:     entity.ActivityActionPurchase,
		OccurredAt: time.Now(),
	}
	if err := srv.activityRepo.Create(ctx, activity); err != nil {
		srv.log(ctx).Warn("Failed to record purchase activity", slog.Any("error", err))
	}

	srv.notifyOrderStatus(ctx, order, "Order placed",
		fmt.Sprintf("Your order #%d has been placed.", order.ID))
}

// GetOrder returns an order with items, payments and refunds attached.
func (srv *orderService) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListUserOrders returns a user's orders, newest first.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uint) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateStatus advances an order along the fulfillment state machine and
// notifies the owner of the accepted change.
func (srv *orderService) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	order, err := srv.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidStatusTransition.WrapMessage(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := srv.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	order.Status = status

	srv.notifyOrderStatus(ctx, order, "Order update",
		fmt.Sprintf("Your order #%d is now %s.", order.ID, status))

	return order, nil
}

// CancelOrder cancels a pending or shipped order, restores the stock of
// every line and records a full refund of whatever has been paid.
func (srv *orderService) CancelOrder(ctx context.Context, id uint, reason string) (*entity.Order, error) {
	order, err := srv.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, domainerrors.ErrInvalidStatusTransition.WrapMessage(
			fmt.Sprintf("cannot cancel an order in status %s", order.Status))
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		productRepo := repoFactory.ProductRepo()

		if err := orderRepo.UpdateStatus(ctx, id, entity.OrderStatusCancelled); err != nil {
			return errors.Wrap(err, "failed to cancel order")
		}

		for _, item := range order.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return errors.Wrapf(err, "failed to restore stock for product %d", item.ProductID)
			}
		}

		var paid float64
		for _, payment := range order.Payments {
			paid += payment.Amount
		}
		if paid > 0 {
			refund := &entity.Refund{OrderID: order.ID, Amount: paid, Reason: reason}
			if err := orderRepo.AddRefund(ctx, refund); err != nil {
				return errors.Wrap(err, "failed to record refund")
			}
			order.Refunds = append(order.Refunds, *refund)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled

	srv.notifyOrderStatus(ctx, order, "Order cancelled",
		fmt.Sprintf("Your order #%d has been cancelled.", order.ID))

	return order, nil
}

// notifyOrderStatus tells the order's owner about a status change. Failures
// are logged, never propagated.
func (srv *orderService) notifyOrderStatus(ctx context.Context, order *entity.Order, title, body string) {
	_, err := srv.notifier.NotifyUser(ctx, &usecase.NotifyUserInput{
		UserID: order.UserID,
		Type:   entity.NotificationTypeOrderStatus,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to notify user of order status",
			slog.Uint64("order_id", uint64(order.ID)), slog.Any("error", err))
	}
}
