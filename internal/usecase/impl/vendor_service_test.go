package impl

import (
	"context"
	"log/slog"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type vendorServiceMocks struct {
	userRepo      *mockRepo.MockUserRepository
	vendorRepo    *mockRepo.MockVendorRepository
	shopRepo      *mockRepo.MockShopRepository
	qrCodeService *mockSvc.MockQRCodeService
}

func newVendorServiceForTest(t *testing.T) (usecase.VendorUsecase, *vendorServiceMocks) {
	t.Helper()

	mocks := &vendorServiceMocks{
		userRepo:      mockRepo.NewMockUserRepository(t),
		vendorRepo:    mockRepo.NewMockVendorRepository(t),
		shopRepo:      mockRepo.NewMockShopRepository(t),
		qrCodeService: mockSvc.NewMockQRCodeService(t),
	}
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Users:   mocks.userRepo,
		Vendors: mocks.vendorRepo,
	})

	service := NewVendorService(VendorServiceParams{
		TxManager:     txManager,
		VendorRepo:    mocks.vendorRepo,
		ShopRepo:      mocks.shopRepo,
		QRCodeService: mocks.qrCodeService,
		Logger:        slog.Default(),
	})

	return service, mocks
}

func TestVendorService_RegisterVendor_PromotesClientToSeller(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByID", ctx, uint(7)).Return(&entity.User{ID: 7, Role: entity.RoleClient}, nil)
	mocks.vendorRepo.On("Create", ctx, mock.MatchedBy(func(v *entity.Vendor) bool {
		return v.UserID == 7 && v.StoreName == "Ada's Antiques"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Vendor).ID = 4
	}).Return(nil)
	mocks.userRepo.On("UpdateFields", ctx, uint(7), map[string]any{"role": "seller"}).Return(nil)

	vendor, err := service.RegisterVendor(ctx, &usecase.RegisterVendorInput{UserID: 7, StoreName: "Ada's Antiques"})

	require.NoError(t, err)
	assert.Equal(t, uint(4), vendor.ID)
}

func TestVendorService_RegisterVendor_SellerKeepsRole(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByID", ctx, uint(7)).Return(&entity.User{ID: 7, Role: entity.RoleSeller}, nil)
	mocks.vendorRepo.On("Create", ctx, mock.AnythingOfType("*entity.Vendor")).Return(nil)

	_, err := service.RegisterVendor(ctx, &usecase.RegisterVendorInput{UserID: 7, StoreName: "Second Shop Co"})

	require.NoError(t, err)
	mocks.userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestVendorService_RegisterVendor_UserMissing(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrUserNotFound)

	_, err := service.RegisterVendor(ctx, &usecase.RegisterVendorInput{UserID: 99, StoreName: "Ghost Store"})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestVendorService_CreateShop(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()

	mocks.vendorRepo.On("FindByID", ctx, uint(4)).Return(&entity.Vendor{ID: 4}, nil)
	mocks.shopRepo.On("Create", ctx, mock.MatchedBy(func(s *entity.Shop) bool {
		return s.VendorID == 4 && s.Name == "Antiques" && s.URL == "https://shops.example.com/antiques"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Shop).ID = 5
	}).Return(nil)

	shop, err := service.CreateShop(ctx, &usecase.CreateShopInput{
		VendorID: 4,
		Name:     "Antiques",
		URL:      "https://shops.example.com/antiques",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), shop.ID)
}

func TestVendorService_GenerateShopQR(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()
	png := []byte{0x89, 'P', 'N', 'G'}

	mocks.shopRepo.On("FindByID", ctx, uint(5)).
		Return(&entity.Shop{ID: 5, URL: "https://shops.example.com/antiques"}, nil)
	mocks.qrCodeService.On("GenerateShopQR", uint(5), "https://shops.example.com/antiques").Return(png, nil)

	data, err := service.GenerateShopQR(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestVendorService_GenerateShopQR_ShopMissing(t *testing.T) {
	service, mocks := newVendorServiceForTest(t)
	ctx := context.Background()

	mocks.shopRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrShopNotFound)

	_, err := service.GenerateShopQR(ctx, 99)

	assert.ErrorIs(t, err, domainerrors.ErrShopNotFound)
}
