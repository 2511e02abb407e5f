package service

import (
	"errors"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/logger"
	"school_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
	}
}

// ProgressPatch 为 nil 的字段不修改
type ProgressPatch struct {
	Status *string
	Score  *float64
}

// Enroll 幂等：已选课时原样返回已有记录，created 为 false
func (s *ProgressService) Enroll(studentID, courseID uint) (*model.Progress, bool, error) {
	if studentID == 0 {
		return nil, false, util.NewValidationError("Invalid studentId", "studentId")
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, false, notFoundOr(err, util.ErrCourseNotFound.WithMeta("courseId", courseID))
	}

	existing, err := s.ProgressRepo.FindByStudentAndCourse(studentID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	progress := model.NewProgress(studentID, courseID)
	if err := s.ProgressRepo.Create(progress); err != nil {
		// 并发选课时唯一索引冲突，返回先写入的记录
		if appErr, ok := util.AsAppError(err); ok && appErr.Code == util.CodeUnique {
			existing, findErr := s.ProgressRepo.FindByStudentAndCourse(studentID, courseID)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	monitoring.Enrollments.Inc()
	logger.Log.Info("Student enrolled",
		zap.Uint("student_id", studentID),
		zap.Uint("course_id", courseID),
	)
	return progress, true, nil
}

func (s *ProgressService) Get(studentID, courseID uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrNotEnrolled.WithMeta("courseId", courseID))
	}
	return progress, nil
}

// Start enrolled -> in_progress；已在进行中时不变
func (s *ProgressService) Start(studentID, courseID uint) (*model.Progress, error) {
	progress, err := s.Get(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if progress.Status == model.StatusInProgress {
		return progress, nil
	}
	if err := model.ValidateStatusTransition(progress.Status, model.StatusInProgress); err != nil {
		return nil, transitionError(err)
	}

	if err := s.ProgressRepo.UpdateFields(progress.ID, map[string]interface{}{
		"status": model.StatusInProgress,
	}); err != nil {
		return nil, err
	}
	return s.Get(studentID, courseID)
}

// Patch 学生客户端直接修改状态或分数，状态只能前进
func (s *ProgressService) Patch(studentID, courseID uint, patch ProgressPatch) (*model.Progress, error) {
	progress, err := s.Get(studentID, courseID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Status != nil {
		next := model.ProgressStatus(*patch.Status)
		if !next.Valid() {
			return nil, util.NewValidationError("status must be one of: enrolled, in_progress, completed", "status")
		}
		if err := model.ValidateStatusTransition(progress.Status, next); err != nil {
			return nil, transitionError(err)
		}
		if next != progress.Status {
			fields["status"] = next
		}
	}
	if patch.Score != nil {
		if *patch.Score < 0 || *patch.Score > 100 {
			return nil, util.NewValidationError("score must be between 0 and 100", "score")
		}
		fields["score"] = *patch.Score
	}

	if len(fields) == 0 {
		return progress, nil
	}
	if err := s.ProgressRepo.UpdateFields(progress.ID, fields); err != nil {
		return nil, err
	}
	return s.Get(studentID, courseID)
}

func (s *ProgressService) ListEnrolled(studentID uint, page util.Pagination) ([]model.EnrolledCourse, int64, error) {
	return s.ProgressRepo.ListEnrolledCourses(studentID, page.Limit, page.Offset)
}

func (s *ProgressService) ListCatalog(studentID uint, page util.Pagination) ([]model.CourseWithEnrollment, int64, error) {
	return s.ProgressRepo.ListCatalog(studentID, page.Limit, page.Offset)
}

func transitionError(err error) error {
	return util.NewValidationError(err.Error(), "status")
}
