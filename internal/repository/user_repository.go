package repository

import (
	"school_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return mapDBError(r.DB.Create(user).Error)
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List role 为空时不过滤
func (r *UserRepository) List(role model.UserRole, limit, offset int) ([]model.User, int64, error) {
	query := r.DB.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) UpdateName(userID uint, name string) error {
	return mapDBError(r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("name", name).
		Error)
}

func (r *UserRepository) UpdatePasswordHash(userID uint, hash string) error {
	return mapDBError(r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).
		Error)
}

func (r *UserRepository) UpdateAvatar(userID uint, avatar string) error {
	return mapDBError(r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", avatar).
		Error)
}
