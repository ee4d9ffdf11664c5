package repo

import (
	"context"
	"time"

	"github.com/ibitrepair/workshop/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	row := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var row models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteRefreshToken removes one stored token. Deleting a token that is
// already gone is not an error, both rejected-use cleanup paths rely on that.
func (r *GormRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.RefreshToken{}).Error
}

// DeleteUserRefreshToken deletes a token only when it belongs to the given
// user, so an authenticated caller cannot revoke someone else's session by
// guessing a token string.
func (r *GormRepo) DeleteUserRefreshToken(ctx context.Context, userID uint, token string) error {
	return r.DB.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		Delete(&models.RefreshToken{}).Error
}

// DeleteAllUserRefreshTokens revokes every session of one user and reports how
// many rows went away.
func (r *GormRepo) DeleteAllUserRefreshTokens(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CountUserRefreshTokens(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
