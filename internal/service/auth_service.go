package service

import (
	"school_backend/internal/config"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// SignupInput 注册参数
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            model.UserRole
}

func (s *AuthService) Signup(in SignupInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if len([]rune(name)) < 2 {
		return nil, util.NewValidationError("Name must be at least 2 characters", "name")
	}
	if email == "" {
		return nil, util.NewValidationError("Email is required", "email")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, util.NewValidationError("Password must be at least 6 characters", "password")
	}
	if in.Password != in.ConfirmPassword {
		return nil, util.NewValidationError("Passwords do not match", "confirmPassword")
	}
	if !in.Role.Valid() {
		return nil, util.NewValidationError("Role must be Teacher or Student", "role")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	// 邮箱重复由唯一索引映射为 UNIQUE_VIOLATION
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User signed up", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
