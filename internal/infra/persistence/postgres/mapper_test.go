package postgres

import (
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	lastLogin := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	googleID := "google-sub-123"
	userM := &model.UserModel{
		ID:              42,
		Email:           "ada@example.com",
		PasswordHash:    "$2a$10$abcdefghijklmnopqrstuv",
		Name:            "Ada",
		Role:            "client",
		IsEmailVerified: true,
		AuthProvider:    "google",
		GoogleID:        &googleID,
		LastLogin:       &lastLogin,
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	user := toUserDomain(userM)
	require.NotNil(t, user)

	back := fromUserDomain(user)
	require.NotNil(t, back)

	assert.Equal(t, userM.ID, back.ID)
	assert.Equal(t, userM.Email, back.Email)
	assert.Equal(t, userM.PasswordHash, back.PasswordHash)
	assert.Equal(t, userM.Name, back.Name)
	assert.Equal(t, userM.Role, back.Role)
	assert.Equal(t, userM.IsEmailVerified, back.IsEmailVerified)
	assert.Equal(t, userM.AuthProvider, back.AuthProvider)
	assert.Equal(t, userM.GoogleID, back.GoogleID)
	assert.Equal(t, userM.LastLogin, back.LastLogin)
	assert.Equal(t, userM.CreatedAt, back.CreatedAt)
	assert.Equal(t, userM.UpdatedAt, back.UpdatedAt)
}

func TestUserMapper_UnloadedRelationsMapToEmptySlices(t *testing.T) {
	t.Parallel()

	// A record fetched without preloads carries nil relation slices. The
	// entity must still come back with empty, non-nil collections.
	user := toUserDomain(&model.UserModel{ID: 7, Email: "bare@example.com", Role: "client"})
	require.NotNil(t, user)

	assert.NotNil(t, user.Addresses)
	assert.Empty(t, user.Addresses)
	assert.NotNil(t, user.Orders)
	assert.Empty(t, user.Orders)
	assert.NotNil(t, user.Carts)
	assert.Empty(t, user.Carts)
	assert.NotNil(t, user.Reviews)
	assert.Empty(t, user.Reviews)
	assert.NotNil(t, user.Notifications)
	assert.Empty(t, user.Notifications)
	assert.NotNil(t, user.Activities)
	assert.Empty(t, user.Activities)
	assert.Nil(t, user.Vendor)
}

func TestUserMapper_NilSafe(t *testing.T) {
	t.Parallel()

	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
	assert.Nil(t, toCategoryDomain(nil))
	assert.Nil(t, fromCategoryDomain(nil))
	assert.Nil(t, toProductDomain(nil))
	assert.Nil(t, fromProductDomain(nil))
	assert.Nil(t, toOrderDomain(nil))
	assert.Nil(t, fromOrderDomain(nil))
	assert.Nil(t, toCartDomain(nil))
	assert.Nil(t, toVendorDomain(nil))
	assert.Nil(t, toShopDomain(nil))
	assert.Nil(t, toSubscriptionDomain(nil))
	assert.Nil(t, toActivityDomain(nil))
	assert.Nil(t, toNotificationDomain(nil))
}

func TestUserMapper_RepeatedConversionIsStable(t *testing.T) {
	t.Parallel()

	userM := &model.UserModel{
		ID:           9,
		Email:        "stable@example.com",
		PasswordHash: "hash",
		Role:         "seller",
		AuthProvider: "local",
		Addresses: []model.AddressModel{
			{ID: 1, UserID: 9, Label: "home", FullAddress: "1 Main St", IsPrimary: true},
		},
	}

	first := toUserDomain(userM)
	second := toUserDomain(userM)

	// Converting the same record twice yields equal entities; the second
	// pass must not observe mutations from the first.
	assert.Equal(t, first, second)

	firstBack := fromUserDomain(first)
	secondBack := fromUserDomain(second)
	assert.Equal(t, firstBack, secondBack)
}

func TestCategoryMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	parentID := uint(3)
	shopID := uint(11)
	categoryM := &model.CategoryModel{
		ID:        5,
		Name:      "Keyboards",
		ParentID:  &parentID,
		ShopID:    &shopID,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	category := toCategoryDomain(categoryM)
	require.NotNil(t, category)
	assert.False(t, category.IsTopLevel())

	back := fromCategoryDomain(category)
	require.NotNil(t, back)
	assert.Equal(t, categoryM.ID, back.ID)
	assert.Equal(t, categoryM.Name, back.Name)
	assert.Equal(t, categoryM.ParentID, back.ParentID)
	assert.Equal(t, categoryM.ShopID, back.ShopID)
	assert.Equal(t, categoryM.CreatedAt, back.CreatedAt)
	assert.Equal(t, categoryM.UpdatedAt, back.UpdatedAt)
}

func TestCategoryMapper_AttachedTree(t *testing.T) {
	t.Parallel()

	categoryM := &model.CategoryModel{
		ID:   2,
		Name: "Peripherals",
		Parent: &model.CategoryModel{
			ID:   1,
			Name: "Electronics",
		},
		Children: []model.CategoryModel{
			{ID: 4, Name: "Mice"},
			{ID: 5, Name: "Keyboards"},
		},
	}

	category := toCategoryDomain(categoryM)
	require.NotNil(t, category)

	require.NotNil(t, category.Parent)
	assert.Equal(t, uint(1), category.Parent.ID)
	assert.True(t, category.Parent.IsTopLevel())

	require.Len(t, category.Children, 2)
	assert.Equal(t, "Mice", category.Children[0].Name)
	assert.Equal(t, "Keyboards", category.Children[1].Name)
	// Grandchildren were not loaded; they map to empty, not nil.
	assert.NotNil(t, category.Children[0].Children)
	assert.Empty(t, category.Children[0].Children)
}

func TestCategoryMapper_TopLevel(t *testing.T) {
	t.Parallel()

	category := toCategoryDomain(&model.CategoryModel{ID: 1, Name: "Electronics"})
	require.NotNil(t, category)

	assert.True(t, category.IsTopLevel())
	assert.Nil(t, category.Parent)
	assert.NotNil(t, category.Children)
	assert.Empty(t, category.Children)
}

func TestProductMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	vendorID := uint(8)
	productM := &model.ProductModel{
		ID:         100,
		Name:       "Mechanical Keyboard",
		Price:      129.99,
		Stock:      25,
		CategoryID: 5,
		ShopID:     11,
		VendorID:   &vendorID,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	product := toProductDomain(productM)
	require.NotNil(t, product)

	back := fromProductDomain(product)
	require.NotNil(t, back)
	assert.Equal(t, productM.ID, back.ID)
	assert.Equal(t, productM.Name, back.Name)
	assert.Equal(t, productM.Price, back.Price)
	assert.Equal(t, productM.Stock, back.Stock)
	assert.Equal(t, productM.CategoryID, back.CategoryID)
	assert.Equal(t, productM.ShopID, back.ShopID)
	assert.Equal(t, productM.VendorID, back.VendorID)
}

func TestProductMapper_UnloadedRelationsMapToEmptySlices(t *testing.T) {
	t.Parallel()

	product := toProductDomain(&model.ProductModel{ID: 1, Name: "Bare", CategoryID: 1, ShopID: 1})
	require.NotNil(t, product)

	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.NotNil(t, product.Variants)
	assert.Empty(t, product.Variants)
	assert.NotNil(t, product.Promotions)
	assert.Empty(t, product.Promotions)
	assert.NotNil(t, product.Reviews)
	assert.Empty(t, product.Reviews)
	assert.NotNil(t, product.CartItems)
	assert.Empty(t, product.CartItems)
	assert.NotNil(t, product.OrderItems)
	assert.Empty(t, product.OrderItems)
	assert.Nil(t, product.Category)
	assert.Nil(t, product.Shop)
	assert.Nil(t, product.Vendor)
}

func TestOrderMapper_RoundTripWithItems(t *testing.T) {
	t.Parallel()

	orderM := &model.OrderModel{
		ID:     77,
		UserID: 42,
		ShopID: 11,
		Status: "pending",
		Total:  259.98,
		Items: []model.OrderItemModel{
			{ID: 1, OrderID: 77, ProductID: 100, Quantity: 2, UnitPrice: 129.99},
		},
	}

	order := toOrderDomain(orderM)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	back := fromOrderDomain(order)
	require.NotNil(t, back)
	assert.Equal(t, orderM.ID, back.ID)
	assert.Equal(t, orderM.Status, back.Status)
	assert.Equal(t, orderM.Total, back.Total)
	require.Len(t, back.Items, 1)
	assert.Equal(t, orderM.Items[0].UnitPrice, back.Items[0].UnitPrice)

	// Payments and refunds were not loaded; they map to empty, not nil.
	assert.NotNil(t, order.Payments)
	assert.Empty(t, order.Payments)
	assert.NotNil(t, order.Refunds)
	assert.Empty(t, order.Refunds)
}

func TestCartMapper_ItemCarriesProductView(t *testing.T) {
	t.Parallel()

	cartM := &model.CartModel{
		ID:       3,
		UserID:   42,
		IsActive: true,
		Items: []model.CartItemModel{
			{
				ID:        1,
				CartID:    3,
				ProductID: 100,
				Quantity:  2,
				Product:   &model.ProductModel{ID: 100, Name: "Mechanical Keyboard", Price: 129.99, Stock: 25},
			},
		},
	}

	cart := toCartDomain(cartM)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	require.NotNil(t, item.Product)
	assert.Equal(t, "Mechanical Keyboard", item.Product.Name)

	// Writing a cart line back strips the denormalized product view.
	itemM := fromCartItemDomain(&item)
	require.NotNil(t, itemM)
	assert.Equal(t, uint(100), itemM.ProductID)
}

func TestVendorMapper_SubscriptionAndShopAttached(t *testing.T) {
	t.Parallel()

	subID := uint(6)
	vendorM := &model.VendorModel{
		ID:             8,
		UserID:         42,
		StoreName:      "Ada's Keys",
		SubscriptionID: &subID,
		Subscription: &model.VendorSubscriptionModel{
			ID:        6,
			VendorID:  8,
			Plan:      "pro",
			IsActive:  true,
			ExpiresAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Shop: &model.ShopModel{ID: 11, Name: "Ada's Keys", URL: "https://shops.example.com/adas-keys", VendorID: 8},
	}

	vendor := toVendorDomain(vendorM)
	require.NotNil(t, vendor)
	require.NotNil(t, vendor.Subscription)
	assert.Equal(t, entity.PlanPro, vendor.Subscription.Plan)
	assert.False(t, vendor.Subscription.IsExpired(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, vendor.Shop)
	assert.Equal(t, "https://shops.example.com/adas-keys", vendor.Shop.URL)

	back := fromVendorDomain(vendor)
	require.NotNil(t, back)
	assert.Equal(t, vendorM.SubscriptionID, back.SubscriptionID)
}

func TestActivityMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	productID := uint(100)
	activityM := &model.UserActivityModel{
		ID:         1,
		UserID:     42,
		Action:     "view_product",
		ProductID:  &productID,
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	activity := toActivityDomain(activityM)
	require.NotNil(t, activity)
	assert.Equal(t, entity.ActivityActionViewProduct, activity.Action)

	back := fromActivityDomain(activity)
	require.NotNil(t, back)
	assert.Equal(t, activityM.ID, back.ID)
	assert.Equal(t, activityM.Action, back.Action)
	assert.Equal(t, activityM.ProductID, back.ProductID)
	assert.Equal(t, activityM.OccurredAt, back.OccurredAt)
}
