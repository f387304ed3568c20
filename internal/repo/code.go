package repo

import (
	"context"

	"AuthKit/internal/model"

	"gorm.io/gorm"
)

// CodeRepository — одноразовые коды подтверждения.
type CodeRepository interface {
	CreateCode(ctx context.Context, code *model.VerificationCode) error
	// LatestActiveCode returns the newest unconsumed code of the purpose or ErrNotFound.
	LatestActiveCode(ctx context.Context, userID int64, purpose model.CodePurpose) (*model.VerificationCode, error)
	// AddAttempt atomically counts a wrong guess while attempts < limit.
	// false means the limit was already reached.
	AddAttempt(ctx context.Context, id int64, limit int) (bool, error)
	// ConsumeCode atomically marks an unconsumed code as used.
	// false means it had already been consumed.
	ConsumeCode(ctx context.Context, id int64) (bool, error)
}

type codeRepo struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) CodeRepository {
	return &codeRepo{db: db}
}

func (r *codeRepo) CreateCode(ctx context.Context, code *model.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *codeRepo) LatestActiveCode(ctx context.Context, userID int64, purpose model.CodePurpose) (*model.VerificationCode, error) {
	var vc model.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND consumed = ?", userID, purpose, false).
		Order("created_at DESC").Order("id DESC").
		First(&vc).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *codeRepo) AddAttempt(ctx context.Context, id int64, limit int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.VerificationCode{}).
		Where("id = ? AND attempts < ?", id, limit).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *codeRepo) ConsumeCode(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.VerificationCode{}).
		Where("id = ? AND consumed = ?", id, false).
		UpdateColumn("consumed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
