// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	activityRepo      repository.ActivityRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	eventPublisher    service.EventPublisher
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	ActivityRepo      repository.ActivityRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	EventPublisher    service.EventPublisher
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		activityRepo:      params.ActivityRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		eventPublisher:    params.EventPublisher,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete user registration process.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.RoleClient,
		AuthProvider: entity.AuthProviderLocal,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check for existing user")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishUserCreated(ctx, newUser)
	srv.log(ctx).Info("User registered", slog.Uint64("user_id", uint64(newUser.ID)))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login authenticates a user with email and password and issues a token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("email or password is incorrect")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("email or password is incorrect")
	}

	return srv.completeLogin(ctx, user)
}

// LoginWithGoogle verifies a Google ID token, provisioning an account on
// first sign-in, and issues a token pair.
func (srv *userService) LoginWithGoogle(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	identity, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, identity.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user, err = srv.provisionGoogleUser(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	return srv.completeLogin(ctx, user)
}

func (srv *userService) provisionGoogleUser(ctx context.Context, identity *service.OAuthUser) (*entity.User, error) {
	srv.log(ctx).Info("Provisioning account from Google sign-in", slog.String("email", identity.Email))

	googleID := identity.Subject
	newUser := &entity.User{
		Name:            identity.Name,
		Email:           identity.Email,
		Role:            entity.RoleClient,
		IsEmailVerified: identity.EmailVerified,
		AuthProvider:    entity.AuthProviderGoogle,
		GoogleID:        &googleID,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to provision google user")
	}

	srv.publishUserCreated(ctx, newUser)

	return newUser, nil
}

func (srv *userService) completeLogin(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.userRepo.RecordLogin(ctx, user.ID); err != nil {
		srv.log(ctx).Warn("Failed to record login time", slog.Any("error", err))
	}

	activity := &entity.UserActivity{UserID: user.ID, Action: entity.ActivityActionLogin, OccurredAt: time.Now()}
	if err := srv.activityRepo.Create(ctx, activity); err != nil {
		srv.log(ctx).Warn("Failed to record login activity", slog.Any("error", err))
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// GetProfile returns a user with their loadable relations attached.
func (srv *userService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile applies a partial profile update. An input with no set
// fields changes nothing and returns the current profile.
func (srv *userService) UpdateProfile(ctx context.Context, userID uint, input *usecase.UpdateProfileInput) (*entity.User, error) {
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
		fields["is_email_verified"] = false
	}

	if len(fields) > 0 {
		err := srv.userRepo.UpdateFields(ctx, userID, fields)
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user does not exist")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to update profile")
		}
	}

	return srv.GetProfile(ctx, userID)
}

// publishUserCreated emits a user.created event. Failures are logged and
// never surface to the caller.
func (srv *userService) publishUserCreated(ctx context.Context, user *entity.User) {
	event := &service.UserCreatedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}

	if err := srv.eventPublisher.PublishUserCreated(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish user.created event",
			slog.Uint64("user_id", uint64(user.ID)), slog.Any("error", err))
	}
}
