package service

import (
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
)

// UserService 用户只读查询
type UserService struct {
	UserRepo *repository.UserRepository
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// GetUsers 获取用户列表，role 为空时返回全部
func (s *UserService) GetUsers(role string, page util.Pagination) ([]model.PublicUser, int64, error) {
	r := model.UserRole(role)
	if role != "" && !r.Valid() {
		return nil, 0, util.NewValidationError("role must be Teacher or Student", "role")
	}

	users, total, err := s.UserRepo.List(r, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.PublicUser, 0, len(users))
	for i := range users {
		items = append(items, users[i].Public())
	}
	return items, total, nil
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, util.ErrUserNotFound.WithMeta("userId", id))
	}
	return user, nil
}
