package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its items in one insert.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
	}

	return nil
}

// FindByID retrieves an order with items, payments and refunds attached.
func (repo *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		Preload("Refunds").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser retrieves all orders of a user, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	var orderMs []model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// UpdateStatus sets the status of an order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// AddPayment records a payment against an order.
func (repo *orderRepository) AddPayment(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt

	return nil
}

// AddRefund records a refund against an order.
func (repo *orderRepository) AddRefund(ctx context.Context, refund *entity.Refund) error {
	refundM := fromRefundDomain(refund)

	if err := repo.db.WithContext(ctx).Create(refundM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add refund")
	}

	refund.ID = refundM.ID
	refund.CreatedAt = refundM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, *toOrderItemDomain(&data.Items[i]))
	}

	payments := make([]entity.Payment, 0, len(data.Payments))
	for i := range data.Payments {
		payments = append(payments, *toPaymentDomain(&data.Payments[i]))
	}

	refunds := make([]entity.Refund, 0, len(data.Refunds))
	for i := range data.Refunds {
		refunds = append(refunds, *toRefundDomain(&data.Refunds[i]))
	}

	return &entity.Order{
		ID:        data.ID,
		UserID:    data.UserID,
		ShopID:    data.ShopID,
		Status:    entity.OrderStatus(data.Status),
		Total:     data.Total,
		Items:     items,
		Payments:  payments,
		Refunds:   refunds,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
// Items are carried along so a new order and its lines insert together;
// payments and refunds are persisted through their own operations.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, *fromOrderItemDomain(&data.Items[i]))
	}

	return &model.OrderModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ShopID:    data.ShopID,
		Status:    data.Status.String(),
		Total:     data.Total,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Product:   toProductDomain(data.Product),
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
	}
}

// fromOrderItemDomain converts a domain OrderItem entity to a GORM OrderItemModel.
func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	if data == nil {
		return nil
	}

	return &model.OrderItemModel{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
	}
}

// toPaymentDomain converts a GORM PaymentModel to a domain Payment entity.
func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:        data.ID,
		OrderID:   data.OrderID,
		Amount:    data.Amount,
		Method:    data.Method,
		PaidAt:    data.PaidAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromPaymentDomain converts a domain Payment entity to a GORM PaymentModel.
func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:      data.ID,
		OrderID: data.OrderID,
		Amount:  data.Amount,
		Method:  data.Method,
		PaidAt:  data.PaidAt,
	}
}

// toRefundDomain converts a GORM RefundModel to a domain Refund entity.
func toRefundDomain(data *model.RefundModel) *entity.Refund {
	if data == nil {
		return nil
	}

	return &entity.Refund{
		ID:        data.ID,
		OrderID:   data.OrderID,
		Amount:    data.Amount,
		Reason:    data.Reason,
		CreatedAt: data.CreatedAt,
	}
}

// fromRefundDomain converts a domain Refund entity to a GORM RefundModel.
func fromRefundDomain(data *entity.Refund) *model.RefundModel {
	if data == nil {
		return nil
	}

	return &model.RefundModel{
		ID:      data.ID,
		OrderID: data.OrderID,
		Amount:  data.Amount,
		Reason:  data.Reason,
	}
}
