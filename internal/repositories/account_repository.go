package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

type AccountRepository interface {
	Insert(ctx context.Context, admin *db_models.Admin) error
	FindByEmail(ctx context.Context, email string) (*db_models.Admin, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := a.db.WithContext(ctx).First(&admin, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, utils.StoreError("find admin by email", err)
	}

	return &admin, nil
}

func (a *accountRepository) Insert(ctx context.Context, admin *db_models.Admin) error {
	return utils.StoreError("insert admin", a.db.WithContext(ctx).Create(admin).Error)
}
