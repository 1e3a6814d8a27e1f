package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bookshop/internal/events"
	"github.com/Skotchmaster/bookshop/internal/hash"
	"github.com/Skotchmaster/bookshop/internal/logging"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/tokens"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

const minPasswordLen = 6

type AuthService struct {
	Repo      *repo.GormRepo
	Events    events.Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
	CustomerID  uint
	IsAdmin     bool
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := models.Customer{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateCustomerIfNotExists(ctx, &customer); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_error", "status", 409, "reason", "user already exist")
			return nil, fmt.Errorf("customer %q: %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	publish(ctx, s.Events, events.TopicCustomer, idKey(customer.ID), "customer_registered", map[string]any{
		"customer_id": customer.ID,
		"username":    customer.Username,
	})
	return &customer, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", req.Username)

	customer, err := s.Repo.GetCustomerByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login failed", "status", 401, "reason", "invalid username or password")
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if !hash.CheckPassword(customer.PasswordHash, req.Password) {
		l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	accessExp := time.Now().Add(s.TokenTTL)
	accessToken, err := tokens.SignAccessToken(customer.ID, customer.Role, accessExp, s.JWTSecret)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		AccessExp:   accessExp,
		CustomerID:  customer.ID,
		IsAdmin:     strings.EqualFold(customer.Role, models.RoleAdmin),
	}, nil
}
