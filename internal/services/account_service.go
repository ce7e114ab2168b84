package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/logger"
	"checkoutdash/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	// EnsureAccount creates the admin when no account uses the email yet.
	EnsureAccount(ctx context.Context, email, password, name string) error
}

// TokenIssuer is satisfied by *utils.TokenManager.
type TokenIssuer interface {
	CreateToken(userID uint, email, name string) (string, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      TokenIssuer
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens TokenIssuer) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()
	log := logger.FromContext(ctx)

	account, err := a.accountRepo.FindByEmail(ctx, strings.TrimSpace(request.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.Password, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Email, account.Name)
	if err != nil {
		return nil, err
	}

	log.Debug("login completed", zap.Uint("admin_id", account.ID), zap.Duration("elapsed", time.Since(startTime)))

	return &response_models.LoginResponse{
		Success: true,
		Token:   token,
		User: response_models.AdminUser{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
		},
	}, nil
}

func (a *AccountService) EnsureAccount(ctx context.Context, email, password, name string) error {
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	return a.accountRepo.Insert(ctx, &db_models.Admin{
		Email:    email,
		Password: hashedPassword,
		Name:     name,
	})
}
