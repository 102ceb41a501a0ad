package dto

import (
	"encoding/json"
	"testing"
	"time"

	"marketplace/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUser_NeverExposesPasswordHash(t *testing.T) {
	t.Parallel()

	user := &entity.User{
		ID:           7,
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret",
		Name:         "Ada",
		Role:         entity.RoleClient,
		AuthProvider: entity.AuthProviderLocal,
	}

	payload, err := json.Marshal(FromUser(user))

	require.NoError(t, err)
	assert.NotContains(t, string(payload), "secret")
	assert.NotContains(t, string(payload), "password")
}

func TestFromUser_UnloadedRelationsMapToEmptySlices(t *testing.T) {
	t.Parallel()

	converted := FromUser(&entity.User{ID: 7, Email: "ada@example.com", Role: entity.RoleClient})

	require.NotNil(t, converted)
	assert.NotNil(t, converted.Addresses)
	assert.Empty(t, converted.Addresses)
	assert.Nil(t, converted.Vendor)
}

func TestFromUser_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromUser(nil))
	assert.Nil(t, FromCategory(nil))
	assert.Nil(t, FromProduct(nil))
	assert.Nil(t, FromCart(nil))
	assert.Nil(t, FromOrder(nil))
	assert.Nil(t, FromVendor(nil))
	assert.Nil(t, FromShop(nil))
	assert.Nil(t, FromSubscription(nil))
	assert.Nil(t, FromActivity(nil))
	assert.Nil(t, FromNotification(nil))
}

func TestFromCategory_TreeLinks(t *testing.T) {
	t.Parallel()

	parentID := uint(1)
	category := &entity.Category{
		ID:       2,
		Name:     "Fiction",
		ParentID: &parentID,
		Parent:   &entity.Category{ID: 1, Name: "Books"},
		Children: []entity.Category{
			{ID: 3, Name: "Sci-Fi"},
			{ID: 4, Name: "Mystery"},
		},
	}

	converted := FromCategory(category)

	require.NotNil(t, converted)
	require.NotNil(t, converted.Parent)
	assert.Equal(t, uint(1), converted.Parent.ID)
	require.Len(t, converted.Children, 2)
	// Grandchildren were not loaded; they still serialize as [].
	assert.NotNil(t, converted.Children[0].Children)
	assert.Empty(t, converted.Children[0].Children)
}

func TestFromProduct_CarriesRelations(t *testing.T) {
	t.Parallel()

	product := &entity.Product{
		ID:         100,
		Name:       "Mug",
		Price:      9.50,
		Stock:      3,
		CategoryID: 2,
		ShopID:     5,
		Images:     []entity.ProductImage{{ID: 1, URL: "https://img.example.com/mug.png", Position: 0}},
		Variants:   []entity.ProductVariant{{ID: 1, Name: "Large", SKU: "MUG-L", Price: 10.50, Stock: 2}},
	}

	converted := FromProduct(product)

	require.NotNil(t, converted)
	require.Len(t, converted.Images, 1)
	require.Len(t, converted.Variants, 1)
	assert.NotNil(t, converted.Promotions)
	assert.Empty(t, converted.Promotions)
	assert.NotNil(t, converted.Reviews)
}

func TestFromOrder_RoundTripOfValues(t *testing.T) {
	t.Parallel()

	now := time.Now()
	order := &entity.Order{
		ID:     55,
		UserID: 7,
		ShopID: 5,
		Status: entity.OrderStatusShipped,
		Total:  44.80,
		Items: []entity.OrderItem{
			{ID: 1, ProductID: 100, Quantity: 2, UnitPrice: 19.90},
		},
		Payments:  []entity.Payment{{ID: 1, Amount: 44.80, Method: "card", PaidAt: now}},
		CreatedAt: now,
	}

	converted := FromOrder(order)

	require.NotNil(t, converted)
	assert.Equal(t, "shipped", converted.Status)
	require.Len(t, converted.Items, 1)
	assert.Equal(t, 19.90, converted.Items[0].UnitPrice)
	require.Len(t, converted.Payments, 1)
	assert.NotNil(t, converted.Refunds)
	assert.Empty(t, converted.Refunds)
}

func TestFromCart_ItemProductSnapshot(t *testing.T) {
	t.Parallel()

	cart := &entity.Cart{
		ID:       3,
		UserID:   7,
		IsActive: true,
		Items: []entity.CartItem{
			{ID: 10, ProductID: 100, Quantity: 2, Product: &entity.Product{ID: 100, Name: "Mug", Price: 9.50}},
			{ID: 11, ProductID: 101, Quantity: 1},
		},
	}

	converted := FromCart(cart)

	require.NotNil(t, converted)
	require.Len(t, converted.Items, 2)
	require.NotNil(t, converted.Items[0].Product)
	assert.Equal(t, "Mug", converted.Items[0].Product.Name)
	assert.Nil(t, converted.Items[1].Product)
}

func TestFromVendor_NestedSubscriptionAndShop(t *testing.T) {
	t.Parallel()

	vendor := &entity.Vendor{
		ID:        4,
		UserID:    7,
		StoreName: "Ada's Antiques",
		Subscription: &entity.VendorSubscription{
			ID: 12, VendorID: 4, Plan: entity.PlanPro, IsActive: true,
		},
		Shop: &entity.Shop{ID: 5, Name: "Antiques", VendorID: 4},
	}

	converted := FromVendor(vendor)

	require.NotNil(t, converted)
	require.NotNil(t, converted.Subscription)
	assert.Equal(t, "pro", converted.Subscription.Plan)
	require.NotNil(t, converted.Shop)
	assert.Equal(t, uint(5), converted.Shop.ID)
}

func TestFromLists_EmptyInputsYieldEmptySlices(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, FromCategories(nil))
	assert.NotNil(t, FromProducts(nil))
	assert.NotNil(t, FromOrders(nil))
	assert.NotNil(t, FromActivities(nil))
	assert.NotNil(t, FromNotifications(nil))
	assert.Empty(t, FromCategories(nil))
}

func TestToEntity_UserRoundTrip_PasswordExcepted(t *testing.T) {
	t.Parallel()

	lastLogin := time.Now().Add(-time.Hour)
	user := &entity.User{
		ID:              7,
		Email:           "ada@example.com",
		PasswordHash:    "$2a$10$secret",
		Name:            "Ada",
		Role:            entity.RoleSeller,
		IsEmailVerified: true,
		AuthProvider:    entity.AuthProviderLocal,
		LastLogin:       &lastLogin,
		Addresses:       []entity.Address{{ID: 1, Label: "home", FullAddress: "1 Main St", IsPrimary: true}},
		Notifications:   []entity.Notification{},
		Vendor: &entity.Vendor{
			ID:        4,
			UserID:    7,
			StoreName: "Ada's Antiques",
			Shop:      &entity.Shop{ID: 5, Name: "Antiques", VendorID: 4},
		},
		CreatedAt: time.Now(),
	}

	restored := FromUser(user).ToEntity()

	expected := *user
	expected.PasswordHash = ""
	assert.Equal(t, &expected, restored)
}

func TestToEntity_CategoryRoundTrip(t *testing.T) {
	t.Parallel()

	parentID := uint(1)
	childParentID := uint(2)
	category := &entity.Category{
		ID:       2,
		Name:     "Fiction",
		ParentID: &parentID,
		Parent:   &entity.Category{ID: 1, Name: "Books", Children: []entity.Category{}},
		Children: []entity.Category{
			{ID: 3, Name: "Sci-Fi", ParentID: &childParentID, Children: []entity.Category{}},
		},
	}

	assert.Equal(t, category, FromCategory(category).ToEntity())
}

func TestToEntity_ProductRoundTrip(t *testing.T) {
	t.Parallel()

	product := &entity.Product{
		ID:         100,
		Name:       "Mug",
		Price:      9.50,
		Stock:      3,
		CategoryID: 2,
		ShopID:     5,
		Images:     []entity.ProductImage{{ID: 1, URL: "https://img.example.com/mug.png", Position: 0}},
		Variants:   []entity.ProductVariant{{ID: 1, Name: "Large", SKU: "MUG-L", Price: 10.50, Stock: 2}},
		Promotions: []entity.Promotion{},
		Reviews:    []entity.Review{{ID: 9, UserID: 7, Rating: 5, Comment: "solid"}},
		CreatedAt:  time.Now(),
	}

	assert.Equal(t, product, FromProduct(product).ToEntity())
}

func TestToEntity_OrderRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	order := &entity.Order{
		ID:     55,
		UserID: 7,
		ShopID: 5,
		Status: entity.OrderStatusShipped,
		Total:  44.80,
		Items: []entity.OrderItem{
			{ID: 1, ProductID: 100, Quantity: 2, UnitPrice: 19.90},
		},
		Payments:  []entity.Payment{{ID: 1, Amount: 44.80, Method: "card", PaidAt: now}},
		Refunds:   []entity.Refund{},
		CreatedAt: now,
	}

	restored := FromOrder(order).ToEntity()

	assert.Equal(t, order, restored)
	assert.Equal(t, entity.OrderStatusShipped, restored.Status)
}

func TestToEntity_Idempotent(t *testing.T) {
	t.Parallel()

	order := &entity.Order{
		ID: 55, UserID: 7, ShopID: 5, Status: entity.OrderStatusPending, Total: 5.00,
		Items: []entity.OrderItem{{ID: 1, ProductID: 100, Quantity: 1, UnitPrice: 5.00}},
		Payments: []entity.Payment{}, Refunds: []entity.Refund{},
	}

	first := FromOrder(order)
	second := FromOrder(first.ToEntity())

	assert.Equal(t, first, second)
}

func TestToEntity_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, (*UserDTO)(nil).ToEntity())
	assert.Nil(t, (*CategoryDTO)(nil).ToEntity())
	assert.Nil(t, (*ProductDTO)(nil).ToEntity())
	assert.Nil(t, (*CartDTO)(nil).ToEntity())
	assert.Nil(t, (*OrderDTO)(nil).ToEntity())
	assert.Nil(t, (*VendorDTO)(nil).ToEntity())
	assert.Nil(t, (*ShopDTO)(nil).ToEntity())
	assert.Nil(t, (*SubscriptionDTO)(nil).ToEntity())
	assert.Nil(t, (*ActivityDTO)(nil).ToEntity())
	assert.Nil(t, (*NotificationDTO)(nil).ToEntity())
}
