package repository

import (
	"time"

	"gorm.io/gorm"

	"tableserve/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByVerificationToken(token string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("verification_token = ?", token).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) MarkVerified(id uint) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).
		Updates(map[string]any{"is_verified": true, "verification_token": ""}).Error
}

// DeleteUnverifiedBefore removes accounts that never confirmed their
// email, created before the cutoff. Returns the number deleted.
func (r *UserRepository) DeleteUnverifiedBefore(cutoff time.Time) (int64, error) {
	res := r.DB.Unscoped().
		Where("is_verified = ? AND created_at < ?", false, cutoff).
		Delete(&entity.User{})
	return res.RowsAffected, res.Error
}
