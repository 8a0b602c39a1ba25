package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/jwt"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/repository"
	"wedding_memories/internal/storage"
	"wedding_memories/internal/transport/http/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	tokenType    = "bearer"
	maxUserLimit = 1000
)

type TokenIssuer interface {
	GenerateToken(user models.User) (string, error)
	RevokeToken(ctx context.Context, claims *jwt.Claims) error
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenIssuer
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		log:    log,
		repo:   repo,
		tokens: tokens,
	}
}

func (s *UserService) RegisterUser(ctx context.Context, input dto.UserRegisterInput) (*models.AuthResult, error) {
	const op = "services.UserService.RegisterUser"

	input.Email = normalizeEmail(input.Email)

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", input.Email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.SaveUser(ctx, input.ToDomain(passHash))
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	return &models.AuthResult{AccessToken: token, TokenType: tokenType, User: user}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	const op = "services.UserService.Login"

	email = normalizeEmail(email)

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return &models.AuthResult{AccessToken: token, TokenType: tokenType, User: user}, nil
}

// Logout revokes the presented token when revocation is enabled, and otherwise only acknowledges.
func (s *UserService) Logout(ctx context.Context, claims *jwt.Claims) error {
	const op = "services.UserService.Logout"

	if err := s.tokens.RevokeToken(ctx, claims); err != nil {
		s.log.Error("failed to revoke token", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "services.UserService.Profile"

	user, err := s.repo.GetUserById(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	const op = "services.UserService.ListUsers"

	users, err := s.repo.ListUsers(ctx, clampLimit(limit, maxUserLimit))
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func clampLimit(limit, max int) uint64 {
	if limit <= 0 || limit > max {
		return uint64(max)
	}

	return uint64(limit)
}
