package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	shopRepo     repository.ShopRepository
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ShopRepo     repository.ShopRepository
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		shopRepo:     params.ShopRepo,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct files a new product under an existing category and shop.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product name must not be empty")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product price must not be negative")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product stock must not be negative")
	}

	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	if _, err := srv.shopRepo.FindByID(ctx, input.ShopID); err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrShopNotFound.WrapMessage("shop does not exist")
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	product := &entity.Product{
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ShopID:     input.ShopID,
		VendorID:   input.VendorID,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created",
		slog.Uint64("product_id", uint64(product.ID)), slog.Uint64("shop_id", uint64(product.ShopID)))

	return product, nil
}

// GetProduct returns a product with its loadable relations attached.
func (srv *productService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListShopProducts returns all products of a shop.
func (srv *productService) ListShopProducts(ctx context.Context, shopID uint) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shop products")
	}

	return products, nil
}

// ListCategoryProducts returns all products filed under a category.
func (srv *productService) ListCategoryProducts(ctx context.Context, categoryID uint) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list category products")
	}

	return products, nil
}

// UpdateProduct applies a partial update. An input with no set fields
// changes nothing and returns the current product.
func (srv *productService) UpdateProduct(ctx context.Context, id uint, input *usecase.UpdateProductInput) (*entity.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("product price must not be negative")
		}
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("product stock must not be negative")
		}
		fields["stock"] = *input.Stock
	}
	if input.CategoryID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
			}

			return nil, errors.Wrap(err, "failed to find category")
		}
		fields["category_id"] = *input.CategoryID
	}

	if len(fields) > 0 {
		err := srv.productRepo.UpdateFields(ctx, id, fields)
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to update product")
		}
	}

	return srv.GetProduct(ctx, id)
}

// DeleteProduct removes a product from the catalog.
func (srv *productService) DeleteProduct(ctx context.Context, id uint) error {
	err := srv.productRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
	}

	return err
}
