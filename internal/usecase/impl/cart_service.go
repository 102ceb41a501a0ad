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

// cartService implements the CartUsecase interface. Every operation works
// on the user's single active cart, creating it on first use.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetActiveCart returns the user's active cart, creating an empty one when
// none exists.
func (srv *cartService) GetActiveCart(ctx context.Context, userID uint) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindActiveByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return srv.createActiveCart(ctx, userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active cart")
	}

	return cart, nil
}

func (srv *cartService) createActiveCart(ctx context.Context, userID uint) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: userID, IsActive: true, Items: []entity.CartItem{}}
	if err := srv.cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	srv.log(ctx).Info("Active cart created", slog.Uint64("user_id", uint64(userID)))

	return cart, nil
}

// AddItem adds a product to the user's active cart. Adding a product that
// is already in the cart increases the existing line's quantity instead of
// creating a second line.
func (srv *cartService) AddItem(ctx context.Context, userID uint, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	cart, err := srv.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing := findCartLine(cart, input.ProductID); existing != nil {
		err = srv.cartRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+input.Quantity)
	} else {
		err = srv.cartRepo.AddItem(ctx, &entity.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		})
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to add cart item")
	}

	return srv.cartRepo.FindActiveByUser(ctx, userID)
}

// UpdateItemQuantity sets a cart line's quantity. A non-positive quantity
// removes the line.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, userID uint, itemID uint, quantity int) (*entity.Cart, error) {
	cart, err := srv.findCartOwningItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		err = srv.cartRepo.RemoveItem(ctx, itemID)
	} else {
		err = srv.cartRepo.UpdateItemQuantity(ctx, itemID, quantity)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update cart item")
	}

	return srv.cartRepo.FindActiveByUser(ctx, cart.UserID)
}

// RemoveItem deletes a line from the user's active cart.
func (srv *cartService) RemoveItem(ctx context.Context, userID uint, itemID uint) (*entity.Cart, error) {
	cart, err := srv.findCartOwningItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := srv.cartRepo.RemoveItem(ctx, itemID); err != nil {
		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	return srv.cartRepo.FindActiveByUser(ctx, cart.UserID)
}

// ClearCart deletes every line of the user's active cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := srv.cartRepo.FindActiveByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find active cart")
	}

	return srv.cartRepo.ClearItems(ctx, cart.ID)
}

// findCartOwningItem returns the user's active cart when it contains the
// item, guarding item mutations against cross-user access.
func (srv *cartService) findCartOwningItem(ctx context.Context, userID uint, itemID uint) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindActiveByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, domainerrors.ErrCartNotFound.WrapMessage("no active cart")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active cart")
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return cart, nil
		}
	}

	return nil, domainerrors.ErrCartNotFound.WrapMessage("item is not in the active cart")
}

func findCartLine(cart *entity.Cart, productID uint) *entity.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}

	return nil
}
