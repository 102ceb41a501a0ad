package main

import (
	"marketplace/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.AddressModel{},
		model.VendorModel{},
		model.ShopModel{},
		model.CategoryModel{},
		model.ProductModel{},
		model.ProductImageModel{},
		model.ProductVariantModel{},
		model.PromotionModel{},
		model.ReviewModel{},
		model.CartModel{},
		model.CartItemModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.PaymentModel{},
		model.RefundModel{},
		model.VendorSubscriptionModel{},
		model.NotificationModel{},
		model.UserActivityModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
