// Package dto defines the JSON shapes the HTTP layer exposes and the
// conversions between them and domain entities. Conversions are pure in
// both directions: nil maps to nil, list-valued relations always map to
// non-nil slices, and credential material never crosses into a DTO —
// converting a DTO back yields the entity it came from, with the password
// hash left empty and fields the DTO never carried at their zero values.
package dto

import (
	"time"

	"marketplace/internal/domain/entity"
)

// UserDTO is the outward shape of a user account. It deliberately has no
// password hash field.
type UserDTO struct {
	ID              uint              `json:"id"`
	Email           string            `json:"email"`
	Name            string            `json:"name,omitempty"`
	Role            string            `json:"role"`
	IsEmailVerified bool              `json:"is_email_verified"`
	AuthProvider    string            `json:"auth_provider"`
	LastLogin       *time.Time        `json:"last_login,omitempty"`
	Addresses       []AddressDTO      `json:"addresses"`
	Notifications   []NotificationDTO `json:"notifications,omitempty"`
	Vendor          *VendorDTO        `json:"vendor,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// AddressDTO is the outward shape of a user address.
type AddressDTO struct {
	ID          uint   `json:"id"`
	Label       string `json:"label,omitempty"`
	FullAddress string `json:"full_address"`
	IsPrimary   bool   `json:"is_primary"`
}

// CategoryDTO is the outward shape of a category tree node. Parent and
// Children reflect what was loaded on the entity.
type CategoryDTO struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	ParentID *uint         `json:"parent_id,omitempty"`
	Parent   *CategoryDTO  `json:"parent,omitempty"`
	Children []CategoryDTO `json:"children"`
	ShopID   *uint         `json:"shop_id,omitempty"`
}

// ProductDTO is the outward shape of a catalog product.
type ProductDTO struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Price      float64             `json:"price"`
	Stock      int                 `json:"stock"`
	CategoryID uint                `json:"category_id"`
	Category   *CategoryDTO        `json:"category,omitempty"`
	ShopID     uint                `json:"shop_id"`
	Images     []ProductImageDTO   `json:"images"`
	Variants   []ProductVariantDTO `json:"variants"`
	Promotions []PromotionDTO      `json:"promotions"`
	Reviews    []ReviewDTO         `json:"reviews"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ProductImageDTO is a product display asset.
type ProductImageDTO struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	AltText  string `json:"alt_text,omitempty"`
	Position int    `json:"position"`
}

// ProductVariantDTO is a purchasable product variation.
type ProductVariantDTO struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// PromotionDTO is a time-bounded discount on a product.
type PromotionDTO struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent float64   `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
}

// ReviewDTO is a user's product rating.
type ReviewDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CartDTO is the outward shape of a shopping cart.
type CartDTO struct {
	ID       uint          `json:"id"`
	UserID   uint          `json:"user_id"`
	IsActive bool          `json:"is_active"`
	Items    []CartItemDTO `json:"items"`
}

// CartItemDTO is a cart line with an optional product snapshot.
type CartItemDTO struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"product_id"`
	Product   *ProductDTO `json:"product,omitempty"`
	Quantity  int         `json:"quantity"`
	AddedAt   time.Time   `json:"added_at"`
}

// OrderDTO is the outward shape of an order.
type OrderDTO struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	ShopID    uint           `json:"shop_id"`
	Status    string         `json:"status"`
	Total     float64        `json:"total"`
	Items     []OrderItemDTO `json:"items"`
	Payments  []PaymentDTO   `json:"payments"`
	Refunds   []RefundDTO    `json:"refunds"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderItemDTO is an order line.
type OrderItemDTO struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"product_id"`
	Product   *ProductDTO `json:"product,omitempty"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unit_price"`
}

// PaymentDTO records money received against an order.
type PaymentDTO struct {
	ID     uint      `json:"id"`
	Amount float64   `json:"amount"`
	Method string    `json:"method"`
	PaidAt time.Time `json:"paid_at"`
}

// RefundDTO records money returned against an order.
type RefundDTO struct {
	ID     uint    `json:"id"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// VendorDTO is the outward shape of a seller profile.
type VendorDTO struct {
	ID           uint             `json:"id"`
	UserID       uint             `json:"user_id"`
	StoreName    string           `json:"store_name"`
	Subscription *SubscriptionDTO `json:"subscription,omitempty"`
	Shop         *ShopDTO         `json:"shop,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ShopDTO is the outward shape of a storefront.
type ShopDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	VendorID  uint      `json:"vendor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionDTO is the outward shape of a vendor subscription.
type SubscriptionDTO struct {
	ID        uint      `json:"id"`
	VendorID  uint      `json:"vendor_id"`
	Plan      string    `json:"plan"`
	IsActive  bool      `json:"is_active"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ActivityDTO is the outward shape of a user activity entry.
type ActivityDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Action     string    `json:"action"`
	ProductID  *uint     `json:"product_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NotificationDTO is the outward shape of a user notification.
type NotificationDTO struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponseDTO carries a token pair and the authenticated user.
type LoginResponseDTO struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserDTO `json:"user"`
}

// --- Conversion Functions ---

// FromUser converts a user entity, dropping the password hash.
func FromUser(user *entity.User) *UserDTO {
	if user == nil {
		return nil
	}

	addresses := make([]AddressDTO, 0, len(user.Addresses))
	for i := range user.Addresses {
		addresses = append(addresses, *FromAddress(&user.Addresses[i]))
	}

	notifications := make([]NotificationDTO, 0, len(user.Notifications))
	for i := range user.Notifications {
		notifications = append(notifications, *FromNotification(&user.Notifications[i]))
	}

	return &UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role.String(),
		IsEmailVerified: user.IsEmailVerified,
		AuthProvider:    user.AuthProvider.String(),
		LastLogin:       user.LastLogin,
		Addresses:       addresses,
		Notifications:   notifications,
		Vendor:          FromVendor(user.Vendor),
		CreatedAt:       user.CreatedAt,
	}
}

// FromAddress converts an address entity.
func FromAddress(address *entity.Address) *AddressDTO {
	if address == nil {
		return nil
	}

	return &AddressDTO{
		ID:          address.ID,
		Label:       address.Label,
		FullAddress: address.FullAddress,
		IsPrimary:   address.IsPrimary,
	}
}

// FromCategory converts a category entity, following loaded parent and
// children links.
func FromCategory(category *entity.Category) *CategoryDTO {
	if category == nil {
		return nil
	}

	children := make([]CategoryDTO, 0, len(category.Children))
	for i := range category.Children {
		children = append(children, *FromCategory(&category.Children[i]))
	}

	return &CategoryDTO{
		ID:       category.ID,
		Name:     category.Name,
		ParentID: category.ParentID,
		Parent:   FromCategory(category.Parent),
		Children: children,
		ShopID:   category.ShopID,
	}
}

// FromCategories converts a category list.
func FromCategories(categories []*entity.Category) []CategoryDTO {
	result := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		result = append(result, *FromCategory(category))
	}

	return result
}

// FromProduct converts a product entity.
func FromProduct(product *entity.Product) *ProductDTO {
	if product == nil {
		return nil
	}

	images := make([]ProductImageDTO, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, ProductImageDTO{
			ID:       image.ID,
			URL:      image.URL,
			AltText:  image.AltText,
			Position: image.Position,
		})
	}

	variants := make([]ProductVariantDTO, 0, len(product.Variants))
	for _, variant := range product.Variants {
		variants = append(variants, ProductVariantDTO{
			ID:    variant.ID,
			Name:  variant.Name,
			SKU:   variant.SKU,
			Price: variant.Price,
			Stock: variant.Stock,
		})
	}

	promotions := make([]PromotionDTO, 0, len(product.Promotions))
	for _, promotion := range product.Promotions {
		promotions = append(promotions, PromotionDTO{
			ID:              promotion.ID,
			Name:            promotion.Name,
			DiscountPercent: promotion.DiscountPercent,
			StartsAt:        promotion.StartsAt,
			EndsAt:          promotion.EndsAt,
		})
	}

	reviews := make([]ReviewDTO, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, ReviewDTO{
			ID:        review.ID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return &ProductDTO{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Stock:      product.Stock,
		CategoryID: product.CategoryID,
		Category:   FromCategory(product.Category),
		ShopID:     product.ShopID,
		Images:     images,
		Variants:   variants,
		Promotions: promotions,
		Reviews:    reviews,
		CreatedAt:  product.CreatedAt,
	}
}

// FromProducts converts a product list.
func FromProducts(products []*entity.Product) []ProductDTO {
	result := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		result = append(result, *FromProduct(product))
	}

	return result
}

// FromCart converts a cart entity.
func FromCart(cart *entity.Cart) *CartDTO {
	if cart == nil {
		return nil
	}

	items := make([]CartItemDTO, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product:   FromProduct(item.Product),
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
	}

	return &CartDTO{
		ID:       cart.ID,
		UserID:   cart.UserID,
		IsActive: cart.IsActive,
		Items:    items,
	}
}

// FromOrder converts an order entity.
func FromOrder(order *entity.Order) *OrderDTO {
	if order == nil {
		return nil
	}

	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product:   FromProduct(item.Product),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	payments := make([]PaymentDTO, 0, len(order.Payments))
	for _, payment := range order.Payments {
		payments = append(payments, PaymentDTO{
			ID:     payment.ID,
			Amount: payment.Amount,
			Method: payment.Method,
			PaidAt: payment.PaidAt,
		})
	}

	refunds := make([]RefundDTO, 0, len(order.Refunds))
	for _, refund := range order.Refunds {
		refunds = append(refunds, RefundDTO{
			ID:     refund.ID,
			Amount: refund.Amount,
			Reason: refund.Reason,
		})
	}

	return &OrderDTO{
		ID:        order.ID,
		UserID:    order.UserID,
		ShopID:    order.ShopID,
		Status:    order.Status.String(),
		Total:     order.Total,
		Items:     items,
		Payments:  payments,
		Refunds:   refunds,
		CreatedAt: order.CreatedAt,
	}
}

// FromOrders converts an order list.
func FromOrders(orders []*entity.Order) []OrderDTO {
	result := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		result = append(result, *FromOrder(order))
	}

	return result
}

// FromVendor converts a vendor entity.
func FromVendor(vendor *entity.Vendor) *VendorDTO {
	if vendor == nil {
		return nil
	}

	return &VendorDTO{
		ID:           vendor.ID,
		UserID:       vendor.UserID,
		StoreName:    vendor.StoreName,
		Subscription: FromSubscription(vendor.Subscription),
		Shop:         FromShop(vendor.Shop),
		CreatedAt:    vendor.CreatedAt,
	}
}

// FromShop converts a shop entity.
func FromShop(shop *entity.Shop) *ShopDTO {
	if shop == nil {
		return nil
	}

	return &ShopDTO{
		ID:        shop.ID,
		Name:      shop.Name,
		URL:       shop.URL,
		VendorID:  shop.VendorID,
		CreatedAt: shop.CreatedAt,
	}
}

// FromSubscription converts a vendor subscription entity.
func FromSubscription(subscription *entity.VendorSubscription) *SubscriptionDTO {
	if subscription == nil {
		return nil
	}

	return &SubscriptionDTO{
		ID:        subscription.ID,
		VendorID:  subscription.VendorID,
		Plan:      subscription.Plan.String(),
		IsActive:  subscription.IsActive,
		StartedAt: subscription.StartedAt,
		ExpiresAt: subscription.ExpiresAt,
	}
}

// FromActivity converts a user activity entity.
func FromActivity(activity *entity.UserActivity) *ActivityDTO {
	if activity == nil {
		return nil
	}

	return &ActivityDTO{
		ID:         activity.ID,
		UserID:     activity.UserID,
		Action:     activity.Action.String(),
		ProductID:  activity.ProductID,
		OccurredAt: activity.OccurredAt,
	}
}

// FromActivities converts an activity list.
func FromActivities(activities []*entity.UserActivity) []ActivityDTO {
	result := make([]ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		result = append(result, *FromActivity(activity))
	}

	return result
}

// FromNotification converts a notification entity.
func FromNotification(notification *entity.Notification) *NotificationDTO {
	if notification == nil {
		return nil
	}

	return &NotificationDTO{
		ID:        notification.ID,
		Type:      notification.Type.String(),
		Title:     notification.Title,
		Body:      notification.Body,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

// FromNotifications converts a notification list.
func FromNotifications(notifications []*entity.Notification) []NotificationDTO {
	result := make([]NotificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, *FromNotification(notification))
	}

	return result
}

// --- Inbound Conversions ---

// ToEntity converts the DTO back to a user entity. The password hash is
// never present on the DTO, so it stays empty.
func (d *UserDTO) ToEntity() *entity.User {
	if d == nil {
		return nil
	}

	addresses := make([]entity.Address, 0, len(d.Addresses))
	for i := range d.Addresses {
		addresses = append(addresses, *d.Addresses[i].ToEntity())
	}

	notifications := make([]entity.Notification, 0, len(d.Notifications))
	for i := range d.Notifications {
		notifications = append(notifications, *d.Notifications[i].ToEntity())
	}

	return &entity.User{
		ID:              d.ID,
		Email:           d.Email,
		Name:            d.Name,
		Role:            entity.Role(d.Role),
		IsEmailVerified: d.IsEmailVerified,
		AuthProvider:    entity.AuthProvider(d.AuthProvider),
		LastLogin:       d.LastLogin,
		Addresses:       addresses,
		Notifications:   notifications,
		Vendor:          d.Vendor.ToEntity(),
		CreatedAt:       d.CreatedAt,
	}
}

// ToEntity converts the DTO back to an address entity.
func (d *AddressDTO) ToEntity() *entity.Address {
	if d == nil {
		return nil
	}

	return &entity.Address{
		ID:          d.ID,
		Label:       d.Label,
		FullAddress: d.FullAddress,
		IsPrimary:   d.IsPrimary,
	}
}

// ToEntity converts the DTO back to a category entity, following parent
// and children links the same way the outbound conversion does.
func (d *CategoryDTO) ToEntity() *entity.Category {
	if d == nil {
		return nil
	}

	children := make([]entity.Category, 0, len(d.Children))
	for i := range d.Children {
		children = append(children, *d.Children[i].ToEntity())
	}

	return &entity.Category{
		ID:       d.ID,
		Name:     d.Name,
		ParentID: d.ParentID,
		Parent:   d.Parent.ToEntity(),
		Children: children,
		ShopID:   d.ShopID,
	}
}

// ToEntity converts the DTO back to a product entity.
func (d *ProductDTO) ToEntity() *entity.Product {
	if d == nil {
		return nil
	}

	images := make([]entity.ProductImage, 0, len(d.Images))
	for _, image := range d.Images {
		images = append(images, entity.ProductImage{
			ID:       image.ID,
			URL:      image.URL,
			AltText:  image.AltText,
			Position: image.Position,
		})
	}

	variants := make([]entity.ProductVariant, 0, len(d.Variants))
	for _, variant := range d.Variants {
		variants = append(variants, entity.ProductVariant{
			ID:    variant.ID,
			Name:  variant.Name,
			SKU:   variant.SKU,
			Price: variant.Price,
			Stock: variant.Stock,
		})
	}

	promotions := make([]entity.Promotion, 0, len(d.Promotions))
	for _, promotion := range d.Promotions {
		promotions = append(promotions, entity.Promotion{
			ID:              promotion.ID,
			Name:            promotion.Name,
			DiscountPercent: promotion.DiscountPercent,
			StartsAt:        promotion.StartsAt,
			EndsAt:          promotion.EndsAt,
		})
	}

	reviews := make([]entity.Review, 0, len(d.Reviews))
	for _, review := range d.Reviews {
		reviews = append(reviews, entity.Review{
			ID:        review.ID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return &entity.Product{
		ID:         d.ID,
		Name:       d.Name,
		Price:      d.Price,
		Stock:      d.Stock,
		CategoryID: d.CategoryID,
		Category:   d.Category.ToEntity(),
		ShopID:     d.ShopID,
		Images:     images,
		Variants:   variants,
		Promotions: promotions,
		Reviews:    reviews,
		CreatedAt:  d.CreatedAt,
	}
}

// ToEntity converts the DTO back to a cart entity.
func (d *CartDTO) ToEntity() *entity.Cart {
	if d == nil {
		return nil
	}

	items := make([]entity.CartItem, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		items = append(items, entity.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product:   item.Product.ToEntity(),
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
	}

	return &entity.Cart{
		ID:       d.ID,
		UserID:   d.UserID,
		IsActive: d.IsActive,
		Items:    items,
	}
}

// ToEntity converts the DTO back to an order entity.
func (d *OrderDTO) ToEntity() *entity.Order {
	if d == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		items = append(items, entity.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product:   item.Product.ToEntity(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	payments := make([]entity.Payment, 0, len(d.Payments))
	for _, payment := range d.Payments {
		payments = append(payments, entity.Payment{
			ID:     payment.ID,
			Amount: payment.Amount,
			Method: payment.Method,
			PaidAt: payment.PaidAt,
		})
	}

	refunds := make([]entity.Refund, 0, len(d.Refunds))
	for _, refund := range d.Refunds {
		refunds = append(refunds, entity.Refund{
			ID:     refund.ID,
			Amount: refund.Amount,
			Reason: refund.Reason,
		})
	}

	return &entity.Order{
		ID:        d.ID,
		UserID:    d.UserID,
		ShopID:    d.ShopID,
		Status:    entity.OrderStatus(d.Status),
		Total:     d.Total,
		Items:     items,
		Payments:  payments,
		Refunds:   refunds,
		CreatedAt: d.CreatedAt,
	}
}

// ToEntity converts the DTO back to a vendor entity.
func (d *VendorDTO) ToEntity() *entity.Vendor {
	if d == nil {
		return nil
	}

	return &entity.Vendor{
		ID:           d.ID,
		UserID:       d.UserID,
		StoreName:    d.StoreName,
		Subscription: d.Subscription.ToEntity(),
		Shop:         d.Shop.ToEntity(),
		CreatedAt:    d.CreatedAt,
	}
}

// ToEntity converts the DTO back to a shop entity.
func (d *ShopDTO) ToEntity() *entity.Shop {
	if d == nil {
		return nil
	}

	return &entity.Shop{
		ID:        d.ID,
		Name:      d.Name,
		URL:       d.URL,
		VendorID:  d.VendorID,
		CreatedAt: d.CreatedAt,
	}
}

// ToEntity converts the DTO back to a vendor subscription entity.
func (d *SubscriptionDTO) ToEntity() *entity.VendorSubscription {
	if d == nil {
		return nil
	}

	return &entity.VendorSubscription{
		ID:        d.ID,
		VendorID:  d.VendorID,
		Plan:      entity.SubscriptionPlan(d.Plan),
		IsActive:  d.IsActive,
		StartedAt: d.StartedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

// ToEntity converts the DTO back to a user activity entity.
func (d *ActivityDTO) ToEntity() *entity.UserActivity {
	if d == nil {
		return nil
	}

	return &entity.UserActivity{
		ID:         d.ID,
		UserID:     d.UserID,
		Action:     entity.ActivityAction(d.Action),
		ProductID:  d.ProductID,
		OccurredAt: d.OccurredAt,
	}
}

// ToEntity converts the DTO back to a notification entity. The DTO does not
// carry the owning user ID; the caller supplies it when it matters.
func (d *NotificationDTO) ToEntity() *entity.Notification {
	if d == nil {
		return nil
	}

	return &entity.Notification{
		ID:        d.ID,
		Type:      entity.NotificationType(d.Type),
		Title:     d.Title,
		Body:      d.Body,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
	}
}
