package impl

import (
	"context"
	"log/slog"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	domainservice "marketplace/internal/domain/service"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceMocks struct {
	userRepo       *mockRepo.MockUserRepository
	activityRepo   *mockRepo.MockActivityRepository
	hasher         *mockSvc.MockPasswordHasher
	tokenService   *mockSvc.MockTokenService
	googleAuth     *mockSvc.MockOAuthAuthService
	eventPublisher *mockSvc.MockEventPublisher
}

func newUserServiceForTest(t *testing.T) (usecase.UserUsecase, *userServiceMocks) {
	t.Helper()

	mocks := &userServiceMocks{
		userRepo:       mockRepo.NewMockUserRepository(t),
		activityRepo:   mockRepo.NewMockActivityRepository(t),
		hasher:         mockSvc.NewMockPasswordHasher(t),
		tokenService:   mockSvc.NewMockTokenService(t),
		googleAuth:     mockSvc.NewMockOAuthAuthService(t),
		eventPublisher: mockSvc.NewMockEventPublisher(t),
	}
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Users: mocks.userRepo,
	})

	service := NewUserService(UserServiceParams{
		TxManager:         txManager,
		UserRepo:          mocks.userRepo,
		ActivityRepo:      mocks.activityRepo,
		Hasher:            mocks.hasher,
		TokenService:      mocks.tokenService,
		GoogleAuthService: mocks.googleAuth,
		EventPublisher:    mocks.eventPublisher,
		Logger:            slog.Default(),
	})

	return service, mocks
}

func TestUserService_RegisterUser(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()

	mocks.hasher.On("Hash", "Str0ng!Passw0rd").Return("$2a$hash", nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, repository.ErrUserNotFound)
	mocks.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).
		Return(nil)
	mocks.eventPublisher.On("PublishUserCreated", ctx, mock.AnythingOfType("*service.UserCreatedEvent")).Return(nil)

	output, err := service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Str0ng!Passw0rd",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), output.User.ID)
	assert.Equal(t, entity.RoleClient, output.User.Role)
	assert.Equal(t, entity.AuthProviderLocal, output.User.AuthProvider)
	assert.Equal(t, "$2a$hash", output.User.PasswordHash)
}

func TestUserService_RegisterUser_DuplicateEmail(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()

	mocks.hasher.On("Hash", "Str0ng!Passw0rd").Return("$2a$hash", nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(&entity.User{ID: 1}, nil)

	_, err := service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Str0ng!Passw0rd",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	mocks.eventPublisher.AssertNotCalled(t, "PublishUserCreated", mock.Anything, mock.Anything)
}

func TestUserService_RegisterUser_PublishFailureIsSwallowed(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()

	mocks.hasher.On("Hash", "Str0ng!Passw0rd").Return("$2a$hash", nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, repository.ErrUserNotFound)
	mocks.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	mocks.eventPublisher.On("PublishUserCreated", ctx, mock.AnythingOfType("*service.UserCreatedEvent")).
		Return(errors.New("broker unavailable"))

	output, err := service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Str0ng!Passw0rd",
	})

	require.NoError(t, err)
	require.NotNil(t, output.User)
}

func TestUserService_Login(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "ada@example.com", PasswordHash: "$2a$hash", Role: entity.RoleClient}

	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	mocks.hasher.On("Check", "Str0ng!Passw0rd", "$2a$hash").Return(true)
	mocks.tokenService.On("GenerateTokens", uint(7), []string{"client"}).Return("access", "refresh", nil)
	mocks.userRepo.On("RecordLogin", ctx, uint(7)).Return(nil)
	mocks.activityRepo.On("Create", ctx, mock.MatchedBy(func(a *entity.UserActivity) bool {
		return a.UserID == 7 && a.Action == entity.ActivityActionLogin
	})).Return(nil)

	output, err := service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "Str0ng!Passw0rd"})

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, uint(7), output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "ada@example.com", PasswordHash: "$2a$hash"}

	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	mocks.hasher.On("Check", "wrong", "$2a$hash").Return(false)

	_, err := service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_LoginWithGoogle_ProvisionsOnFirstSignIn(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()

	mocks.googleAuth.On("VerifyIDToken", ctx, "id-token").Return(&domainservice.OAuthUser{
		Subject:       "google-sub-1",
		Email:         "ada@example.com",
		EmailVerified: true,
		Name:          "Ada",
	}, nil)
	mocks.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, repository.ErrUserNotFound)
	mocks.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.AuthProvider == entity.AuthProviderGoogle && u.GoogleID != nil && *u.GoogleID == "google-sub-1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 9
	}).Return(nil)
	mocks.eventPublisher.On("PublishUserCreated", ctx, mock.AnythingOfType("*service.UserCreatedEvent")).Return(nil)
	mocks.tokenService.On("GenerateTokens", uint(9), []string{"client"}).Return("access", "refresh", nil)
	mocks.userRepo.On("RecordLogin", ctx, uint(9)).Return(nil)
	mocks.activityRepo.On("Create", ctx, mock.AnythingOfType("*entity.UserActivity")).Return(nil)

	output, err := service.LoginWithGoogle(ctx, &usecase.GoogleLoginInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, uint(9), output.User.ID)
	assert.Empty(t, output.User.PasswordHash)
}

func TestUserService_UpdateProfile_NoFieldsIsNoOp(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Name: "Ada", Email: "ada@example.com"}

	mocks.userRepo.On("FindByID", ctx, uint(7)).Return(user, nil)

	updated, err := service.UpdateProfile(ctx, 7, &usecase.UpdateProfileInput{})

	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	mocks.userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_EmailChangeResetsVerification(t *testing.T) {
	service, mocks := newUserServiceForTest(t)
	ctx := context.Background()
	newEmail := "ada@new.example.com"

	mocks.userRepo.On("UpdateFields", ctx, uint(7), map[string]any{
		"email":             newEmail,
		"is_email_verified": false,
	}).Return(nil)
	mocks.userRepo.On("FindByID", ctx, uint(7)).
		Return(&entity.User{ID: 7, Email: newEmail}, nil)

	updated, err := service.UpdateProfile(ctx, 7, &usecase.UpdateProfileInput{Email: &newEmail})

	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
}
