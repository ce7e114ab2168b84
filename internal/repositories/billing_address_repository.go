package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

// billingLookupChunk bounds the size of each IN (...) list.
const billingLookupChunk = 500

type BillingAddressRepository interface {
	// FindByUserIDs returns addresses for the given users ordered by id, so
	// the earliest record per (user, product) comes first.
	FindByUserIDs(ctx context.Context, userIDs []string) ([]db_models.BillingAddress, error)
	FindOne(ctx context.Context, userID, productID string) (*db_models.BillingAddress, error)
}

type billingAddressRepository struct {
	db *gorm.DB
}

func NewBillingAddressRepository(db *gorm.DB) BillingAddressRepository {
	return &billingAddressRepository{db: db}
}

func (r *billingAddressRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]db_models.BillingAddress, error) {
	var out []db_models.BillingAddress
	for start := 0; start < len(userIDs); start += billingLookupChunk {
		end := min(start+billingLookupChunk, len(userIDs))

		var chunk []db_models.BillingAddress
		err := r.db.WithContext(ctx).
			Where("user_id IN ?", userIDs[start:end]).
			Order("id ASC").
			Find(&chunk).Error
		if err != nil {
			return nil, utils.StoreError("billing addresses by user", err)
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (r *billingAddressRepository) FindOne(ctx context.Context, userID, productID string) (*db_models.BillingAddress, error) {
	var addr db_models.BillingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("id ASC").
		First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, utils.StoreError("billing address", err)
	}
	return &addr, nil
}
