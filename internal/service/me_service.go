package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

const (
	MinNameLength    = 2
	SummaryLatestCnt = 5
	MyCoursesLimit   = 12
)

// MeService 当前登录用户的资料与统计
type MeService struct {
	UserRepo     *repository.UserRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	ReportRepo   *repository.ReportRepository
	Storage      *StorageService
}

func NewMeService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	reportRepo *repository.ReportRepository,
	storage *StorageService,
) *MeService {
	return &MeService{
		UserRepo:     userRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		ReportRepo:   reportRepo,
		Storage:      storage,
	}
}

func (s *MeService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *MeService) Rename(userID uint, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinNameLength {
		return nil, util.NewValidationError("Name must be at least 2 characters", "name")
	}
	if _, err := s.Profile(userID); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateName(userID, name); err != nil {
		return nil, err
	}
	return s.Profile(userID)
}

func (s *MeService) ChangePassword(userID uint, current, next string) error {
	if current == "" {
		return util.NewValidationError("currentPassword is required", "currentPassword")
	}
	if len(next) < MinPasswordLength {
		return util.NewValidationError("New password must be at least 6 characters", "newPassword")
	}

	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.PasswordHash, current) {
		return util.NewValidationError("Current password is incorrect", "currentPassword")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePasswordHash(userID, hash)
}

// UploadAvatar 校验图片类型与大小后上传，返回更新后的用户
func (s *MeService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error) {
	if file.Size > util.MaxAvatarSize {
		return nil, util.NewValidationError("Avatar must be at most 2MB", "file")
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		return nil, util.NewValidationError("Unsupported image type", "file")
	}
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return nil, util.NewValidationError("File must be an image", "file")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, model.GenerateUUID(), ext)
	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, mimeType)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return nil, err
	}
	logger.Log.Info("Avatar updated", zap.Uint("user_id", userID), zap.String("object", objectName))

	user.Avatar = url
	return user, nil
}

// MyCourses 教师返回自己开设的课程，学生返回已选课程
func (s *MeService) MyCourses(claims *util.Claims, page util.Pagination) (interface{}, int64, error) {
	switch claims.Role {
	case model.Teacher:
		return s.CourseRepo.List(claims.UserID, page.Limit, page.Offset)
	case model.Student:
		return s.ProgressRepo.ListEnrolledCourses(claims.UserID, page.Limit, page.Offset)
	}
	return nil, 0, util.NewForbiddenError("Unknown role")
}

func (s *MeService) Summary(claims *util.Claims) (interface{}, error) {
	switch claims.Role {
	case model.Teacher:
		count, err := s.CourseRepo.Count(claims.UserID)
		if err != nil {
			return nil, err
		}
		latest, err := s.ReportRepo.LatestOwnedCourses(claims.UserID, SummaryLatestCnt)
		if err != nil {
			return nil, err
		}
		return model.TeacherSummary{
			Role:        model.Teacher,
			OwnedCount:  count,
			LatestOwned: latest,
		}, nil
	case model.Student:
		latest, count, err := s.ProgressRepo.ListEnrolledCourses(claims.UserID, SummaryLatestCnt, 0)
		if err != nil {
			return nil, err
		}
		return model.StudentSummary{
			Role:           model.Student,
			EnrolledCount:  count,
			LatestEnrolled: latest,
		}, nil
	}
	return nil, util.NewForbiddenError("Unknown role")
}
