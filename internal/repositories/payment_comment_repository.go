package repositories

import (
	"context"

	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

// PaymentCommentRepository only appends; audit rows are never changed.
type PaymentCommentRepository interface {
	Insert(ctx context.Context, comment *db_models.PaymentComment) error
	ListByProduct(ctx context.Context, productID string) ([]db_models.PaymentComment, error)
}

type paymentCommentRepository struct {
	db *gorm.DB
}

func NewPaymentCommentRepository(db *gorm.DB) PaymentCommentRepository {
	return &paymentCommentRepository{db: db}
}

func (r *paymentCommentRepository) Insert(ctx context.Context, comment *db_models.PaymentComment) error {
	return utils.StoreError("insert payment comment", r.db.WithContext(ctx).Create(comment).Error)
}

func (r *paymentCommentRepository) ListByProduct(ctx context.Context, productID string) ([]db_models.PaymentComment, error) {
	var comments []db_models.PaymentComment
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		Find(&comments).Error
	return comments, utils.StoreError("list payment comments", err)
}
