package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	txManager     repository.TransactionManager
	vendorRepo    repository.VendorRepository
	shopRepo      repository.ShopRepository
	qrCodeService service.QRCodeService
	logger        *slog.Logger
}

// VendorServiceParams holds dependencies for VendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	VendorRepo    repository.VendorRepository
	ShopRepo      repository.ShopRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		txManager:     params.TxManager,
		vendorRepo:    params.VendorRepo,
		shopRepo:      params.ShopRepo,
		qrCodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterVendor creates the seller profile for a user and promotes the
// user to the seller role, both in one transaction.
func (srv *vendorService) RegisterVendor(ctx context.Context, input *usecase.RegisterVendorInput) (*entity.Vendor, error) {
	if input.StoreName == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("store name must not be empty")
	}

	vendor := &entity.Vendor{UserID: input.UserID, StoreName: input.StoreName}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		vendorRepo := repoFactory.VendorRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("user does not exist")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if err := vendorRepo.Create(ctx, vendor); err != nil {
			return err
		}

		if user.Role != entity.RoleSeller {
			if err := userRepo.UpdateFields(ctx, user.ID, map[string]any{"role": entity.RoleSeller.String()}); err != nil {
				return errors.Wrap(err, "failed to promote user to seller")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vendor registered",
		slog.Uint64("vendor_id", uint64(vendor.ID)), slog.Uint64("user_id", uint64(input.UserID)))

	return vendor, nil
}

// GetVendor returns a vendor with its subscription and shop attached.
func (srv *vendorService) GetVendor(ctx context.Context, id uint) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrVendorNotFound) {
		return nil, domainerrors.ErrVendorNotFound.WrapMessage("vendor does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find vendor")
	}

	return vendor, nil
}

// GetVendorByUser returns the vendor profile owned by a user.
func (srv *vendorService) GetVendorByUser(ctx context.Context, userID uint) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrVendorNotFound) {
		return nil, domainerrors.ErrVendorNotFound.WrapMessage("user has no vendor profile")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find vendor")
	}

	return vendor, nil
}

// CreateShop opens a storefront for an existing vendor.
func (srv *vendorService) CreateShop(ctx context.Context, input *usecase.CreateShopInput) (*entity.Shop, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("shop name must not be empty")
	}

	if _, err := srv.GetVendor(ctx, input.VendorID); err != nil {
		return nil, err
	}

	shop := &entity.Shop{VendorID: input.VendorID, Name: input.Name, URL: input.URL}
	if err := srv.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Shop created",
		slog.Uint64("shop_id", uint64(shop.ID)), slog.Uint64("vendor_id", uint64(input.VendorID)))

	return shop, nil
}

// GetShop returns a shop with its vendor attached.
func (srv *vendorService) GetShop(ctx context.Context, id uint) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrShopNotFound) {
		return nil, domainerrors.ErrShopNotFound.WrapMessage("shop does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shop")
	}

	return shop, nil
}

// GenerateShopQR renders a PNG QR code resolving to the shop's storefront URL.
func (srv *vendorService) GenerateShopQR(ctx context.Context, shopID uint) ([]byte, error) {
	shop, err := srv.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodeService.GenerateShopQR(shop.ID, shop.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate shop QR code")
	}

	return png, nil
}
