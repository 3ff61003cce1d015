package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "invoice-service/internal/domain/user"
	"invoice-service/pkg/apperrors"
	"invoice-service/pkg/token"
)

// Repository defines the interface for credential store access. It abstracts
// the data layer, allowing different implementations (plain PostgreSQL, the
// cached decorator) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)           // Create a new user
	GetByEmail(ctx context.Context, email string) (*domain.User, error)  // Retrieve user by email, nil if absent
	GetByID(ctx context.Context, id int64) (*domain.User, error)         // Retrieve user by ID
}

// Service implements registration and login. Token issuance is stateless:
// nothing is persisted for a login beyond the signed claims handed to the
// client.
type Service struct {
	repo       Repository
	tokens     *token.Maker
	bcryptCost int
	log        *zap.Logger
	validate   *validator.Validate
}

// New creates a new auth Service with the provided repository and token maker.
func New(r Repository, tokens *token.Maker, bcryptCost int, log *zap.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &Service{
		repo:       r,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		validate:   validator.New(),
	}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new user after checking email uniqueness and hashing
// the password. The plaintext password never leaves this function.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	s.log.Info("registering user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		s.log.Warn("email already registered", zap.String("email", in.Email))
		return nil, apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// The unique index may still reject a concurrent registration that
		// slipped past the lookup above.
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &RegisterResponse{ID: id}, nil
}

// Login verifies the credentials and issues a signed token embedding the
// user id and email. No state is written.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to look up user", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		s.log.Warn("login for unknown email", zap.String("email", in.Email))
		return nil, apperrors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.log.Warn("password mismatch", zap.String("email", in.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		s.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	s.log.Info("user logged in", zap.Int64("id", u.ID))
	return &LoginResponse{Token: signed, UserID: u.ID}, nil
}

// Profile returns the account data for an authenticated user, looked up by
// the id carried in the verified token claims.
func (s *Service) Profile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn("profile lookup failed", zap.Int64("id", userID), zap.Error(err))
		return nil, err
	}

	return &ProfileResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}
