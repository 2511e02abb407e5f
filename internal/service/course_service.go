package service

import (
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"strings"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	QuizRepo   *repository.QuizRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, quizRepo *repository.QuizRepository) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		QuizRepo:   quizRepo,
	}
}

// CoursePatch 为 nil 的字段不修改
type CoursePatch struct {
	Title       *string
	Description *string
}

func (s *CourseService) Create(teacherID uint, title, description string) (*model.Course, error) {
	if err := s.assertTeacher(teacherID); err != nil {
		return nil, err
	}
	title, description = strings.TrimSpace(title), strings.TrimSpace(description)
	if err := validateCourseText(title, description); err != nil {
		return nil, err
	}

	course := &model.Course{
		TeacherID:   teacherID,
		Title:       title,
		Description: description,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByID(course.ID)
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, util.ErrCourseNotFound.WithMeta("courseId", id))
	}
	return course, nil
}

// List teacherID 为 0 时列出全部课程
func (s *CourseService) List(teacherID uint, page util.Pagination) ([]model.Course, int64, error) {
	return s.CourseRepo.List(teacherID, page.Limit, page.Offset)
}

func (s *CourseService) Count(teacherID uint) (int64, error) {
	return s.CourseRepo.Count(teacherID)
}

// Replace PUT 语义，两个字段都必填
func (s *CourseService) Replace(viewerID, id uint, title, description string) (*model.Course, error) {
	return s.Patch(viewerID, id, CoursePatch{Title: &title, Description: &description})
}

func (s *CourseService) Patch(viewerID, id uint, patch CoursePatch) (*model.Course, error) {
	if _, err := s.ownedCourse(viewerID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, util.NewValidationError("Title is required", "title")
		}
		fields["title"] = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, util.NewValidationError("Description is required", "description")
		}
		fields["description"] = description
	}

	if len(fields) > 0 {
		if err := s.CourseRepo.Update(id, fields); err != nil {
			return nil, err
		}
	}
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) Delete(viewerID, id uint) error {
	if _, err := s.ownedCourse(viewerID, id); err != nil {
		return err
	}
	affected, err := s.CourseRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrCourseNotFound.WithMeta("courseId", id)
	}
	return nil
}

// ListQuizzes 课程下的题目，课程不存在时返回 NotFound
// 只有课程的授课教师能看到正确答案，其他人拿到 []model.StudentQuiz
func (s *CourseService) ListQuizzes(claims *util.Claims, courseID uint, page util.Pagination) (interface{}, int64, error) {
	course, err := s.Get(courseID)
	if err != nil {
		return nil, 0, err
	}
	quizzes, total, err := s.QuizRepo.List(courseID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	if claims.Role == model.Teacher && course.TeacherID == claims.UserID {
		return quizzes, total, nil
	}

	items := make([]model.StudentQuiz, 0, len(quizzes))
	for i := range quizzes {
		items = append(items, quizzes[i].ForStudent())
	}
	return items, total, nil
}

// ownedCourse 课程不存在返回 NotFound，非本人课程返回 Forbidden
func (s *CourseService) ownedCourse(viewerID, id uint) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != viewerID {
		return nil, util.ErrNotCourseOwner
	}
	return course, nil
}

// assertTeacher 教师必须存在且角色为 Teacher
func (s *CourseService) assertTeacher(teacherID uint) error {
	if teacherID == 0 {
		return util.NewValidationError("Invalid teacherId", "teacherId")
	}
	user, err := s.UserRepo.FindByID(teacherID)
	if err != nil {
		return notFoundOr(err, util.NewValidationError("Unknown teacher", "teacherId"))
	}
	if user.Role != model.Teacher {
		return util.NewValidationError("User is not a teacher", "teacherId")
	}
	return nil
}

func validateCourseText(title, description string) error {
	if title == "" {
		return util.NewValidationError("Title is required", "title")
	}
	if description == "" {
		return util.NewValidationError("Description is required", "description")
	}
	return nil
}
