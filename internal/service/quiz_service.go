package service

import (
	"encoding/json"
	"errors"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"strings"

	"gorm.io/datatypes"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		CourseRepo: courseRepo,
	}
}

// QuizInput 创建与编辑共用，编辑时同样要求全部字段
type QuizInput struct {
	CourseID      *model.FlexInt
	Question      string
	Options       json.RawMessage
	CorrectAnswer *model.FlexInt
}

// validatedQuiz 校验并规范化后的题目
type validatedQuiz struct {
	courseID uint
	question string
	options  model.OptionMap
	correct  int
}

// validateQuizInput 校验题目，选项压缩为 1..N 并同步映射正确答案
func validateQuizInput(in QuizInput) (*validatedQuiz, error) {
	if in.CourseID == nil || *in.CourseID < 1 {
		return nil, util.NewValidationError("courseId is required", "courseId")
	}

	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, util.NewValidationError("Question is required", "question")
	}

	options := model.NormalizeOptions(in.Options).Trimmed()
	if len(options) < model.MinOptions {
		return nil, util.NewValidationError("At least two options are required", "options")
	}
	for _, opt := range options.Sorted() {
		if opt.Value == "" {
			return nil, util.NewValidationError("Option values must be non-empty", "options")
		}
	}

	if in.CorrectAnswer == nil {
		return nil, util.NewValidationError("correctAnswer is required", "correctAnswer")
	}
	compacted, correct, ok := options.Compact(in.CorrectAnswer.Int())
	if !ok {
		return nil, util.NewValidationError("correctAnswer must match one of the option ids", "correctAnswer")
	}

	return &validatedQuiz{
		courseID: uint(*in.CourseID),
		question: question,
		options:  compacted,
		correct:  correct,
	}, nil
}

func (s *QuizService) Create(viewerID uint, in QuizInput) (*model.Quiz, error) {
	v, err := validateQuizInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.assertCourseOwner(viewerID, v.courseID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		CourseID:      v.courseID,
		Question:      v.question,
		Options:       datatypes.NewJSONType(v.options),
		CorrectAnswer: v.correct,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, util.ErrQuizNotFound.WithMeta("quizId", id))
	}
	return quiz, nil
}

// List courseID 为 0 时不过滤
func (s *QuizService) List(courseID uint, page util.Pagination) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(courseID, page.Limit, page.Offset)
}

// Update 完整重新校验，可将题目移到调用者拥有的另一门课程
func (s *QuizService) Update(viewerID, id uint, in QuizInput) (*model.Quiz, error) {
	quiz, err := s.ownedQuiz(viewerID, id)
	if err != nil {
		return nil, err
	}

	v, err := validateQuizInput(in)
	if err != nil {
		return nil, err
	}
	if v.courseID != quiz.CourseID {
		if err := s.assertCourseOwner(viewerID, v.courseID); err != nil {
			return nil, err
		}
	}

	quiz.CourseID = v.courseID
	quiz.Question = v.question
	quiz.Options = datatypes.NewJSONType(v.options)
	quiz.CorrectAnswer = v.correct
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuizService) Delete(viewerID, id uint) error {
	if _, err := s.ownedQuiz(viewerID, id); err != nil {
		return err
	}
	affected, err := s.QuizRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrQuizNotFound.WithMeta("quizId", id)
	}
	return nil
}

// RemoveOption 删除一个选项并重新编号；正确选项不能被删除
func (s *QuizService) RemoveOption(viewerID, quizID uint, optionID int) (*model.Quiz, error) {
	quiz, err := s.ownedQuiz(viewerID, quizID)
	if err != nil {
		return nil, err
	}

	options := quiz.OptionMap()
	if optionID == quiz.CorrectAnswer && options.Has(optionID) {
		return nil, util.NewValidationError(model.ErrCorrectRemoved.Error(), "optionId")
	}

	next, correct, ok, err := options.RemoveOption(optionID, quiz.CorrectAnswer)
	switch {
	case errors.Is(err, model.ErrUnknownOption):
		return nil, util.NewNotFoundError("Option not found", map[string]interface{}{"optionId": optionID})
	case errors.Is(err, model.ErrTooFewOptions):
		return nil, util.NewValidationError(err.Error(), "options")
	case err != nil:
		return nil, err
	case !ok:
		return nil, util.NewValidationError("correctAnswer must match one of the option ids", "correctAnswer")
	}

	quiz.Options = datatypes.NewJSONType(next)
	quiz.CorrectAnswer = correct
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return s.Get(quizID)
}

func (s *QuizService) ownedQuiz(viewerID, id uint) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(quiz.CourseID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrCourseNotFound.WithMeta("courseId", quiz.CourseID))
	}
	if course.TeacherID != viewerID {
		return nil, util.ErrNotCourseOwner
	}
	return quiz, nil
}

// assertCourseOwner 引用的课程不存在视为参数错误
func (s *QuizService) assertCourseOwner(viewerID, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return notFoundOr(err, util.NewValidationError("Unknown course", "courseId"))
	}
	if course.TeacherID != viewerID {
		return util.ErrNotCourseOwner
	}
	return nil
}
