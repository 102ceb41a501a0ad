// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CategoryHandler     *handler.CategoryHandler
	ProductHandler      *handler.ProductHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	VendorHandler       *handler.VendorHandler
	SubscriptionHandler *handler.SubscriptionHandler
	ActivityHandler     *handler.ActivityHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	authed := p.AuthMiddleware.Authenticate
	sellerOnly := p.AuthMiddleware.RequireRole(string(entity.RoleSeller))
	adminOnly := p.AuthMiddleware.RequireRole(string(entity.RoleAdmin))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.UserHandler.RegisterUser)
		authGroup.POST("/login", p.UserHandler.Login)
		authGroup.POST("/login/google", p.UserHandler.LoginWithGoogle)
	}

	// User routes that require authentication
	userGroup := e.Group("/users", authed)
	{
		userGroup.GET("/profile", p.UserHandler.GetProfile)
		userGroup.PATCH("/profile", p.UserHandler.UpdateProfile)
	}

	// Category browsing is public; mutations need a seller account.
	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("/top-level", p.CategoryHandler.GetTopLevel)
		categoryGroup.GET("/exists", p.CategoryHandler.Exists)
		categoryGroup.GET("/:id", p.CategoryHandler.GetCategory)
		categoryGroup.GET("/:id/children", p.CategoryHandler.GetChildren)
		categoryGroup.GET("/:id/hierarchy", p.CategoryHandler.GetHierarchy)

		categoryGroup.POST("", p.CategoryHandler.CreateCategory, authed, sellerOnly)
		categoryGroup.PATCH("/:id", p.CategoryHandler.UpdateCategory, authed, sellerOnly)
		categoryGroup.PUT("/:id/parent", p.CategoryHandler.SetParent, authed, sellerOnly)
		categoryGroup.DELETE("/:id", p.CategoryHandler.DeleteCategory, authed, sellerOnly)
	}

	// Product browsing is public; mutations need a seller account.
	productGroup := e.Group("/products")
	{
		productGroup.GET("/:id", p.ProductHandler.GetProduct)

		productGroup.POST("", p.ProductHandler.CreateProduct, authed, sellerOnly)
		productGroup.PATCH("/:id", p.ProductHandler.UpdateProduct, authed, sellerOnly)
		productGroup.DELETE("/:id", p.ProductHandler.DeleteProduct, authed, sellerOnly)
	}
	e.GET("/shops/:shopID/products", p.ProductHandler.ListShopProducts)
	e.GET("/categories/:categoryID/products", p.ProductHandler.ListCategoryProducts)

	// Cart routes are scoped to the authenticated user.
	cartGroup := e.Group("/cart", authed)
	{
		cartGroup.GET("", p.CartHandler.GetCart)
		cartGroup.POST("/items", p.CartHandler.AddItem)
		cartGroup.PATCH("/items/:itemID", p.CartHandler.UpdateItem)
		cartGroup.DELETE("/items/:itemID", p.CartHandler.RemoveItem)
		cartGroup.DELETE("", p.CartHandler.ClearCart)
	}

	// Order routes. Status transitions are an administrative concern;
	// cancellation belongs to the order's owner.
	orderGroup := e.Group("/orders", authed)
	{
		orderGroup.POST("", p.OrderHandler.PlaceOrder)
		orderGroup.GET("", p.OrderHandler.ListOrders)
		orderGroup.GET("/:id", p.OrderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", p.OrderHandler.CancelOrder)
		orderGroup.PUT("/:id/status", p.OrderHandler.UpdateStatus, adminOnly)
	}

	// Vendor and shop routes.
	vendorGroup := e.Group("/vendors")
	{
		vendorGroup.POST("", p.VendorHandler.RegisterVendor, authed)
		vendorGroup.GET("/me", p.VendorHandler.GetOwnVendor, authed)
		vendorGroup.GET("/:id", p.VendorHandler.GetVendor)
		vendorGroup.GET("/:vendorID/subscription", p.SubscriptionHandler.GetActive)
	}
	shopGroup := e.Group("/shops")
	{
		shopGroup.GET("/:id", p.VendorHandler.GetShop)
		shopGroup.GET("/:id/qr", p.VendorHandler.GetShopQR)
		shopGroup.POST("", p.VendorHandler.CreateShop, authed, sellerOnly)
	}

	// Subscription routes require an authenticated seller.
	e.POST("/subscriptions", p.SubscriptionHandler.Subscribe, authed, sellerOnly)

	// Activity trail. Corrections and deletions are administrative.
	activityGroup := e.Group("/activities", authed)
	{
		activityGroup.POST("", p.ActivityHandler.RecordActivity)
		activityGroup.GET("", p.ActivityHandler.ListActivities)
		activityGroup.PATCH("/:id", p.ActivityHandler.CorrectActivity, adminOnly)
		activityGroup.DELETE("/:id", p.ActivityHandler.DeleteActivity, adminOnly)
	}

	// Notification routes.
	notificationGroup := e.Group("/notifications", authed)
	{
		notificationGroup.GET("", p.NotificationHandler.ListNotifications)
		notificationGroup.POST("/:id/read", p.NotificationHandler.MarkRead)
	}
}
