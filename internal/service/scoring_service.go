package service

import (
	"math"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/logger"
	"school_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionResult 一次提交的评分结果
type SubmissionResult struct {
	Score    int               `json:"score"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
	Attempt  model.QuizAttempt `json:"attempt"`
	Progress *model.Progress   `json:"progress"`
}

type ScoringService struct {
	DB           *gorm.DB
	QuizRepo     *repository.QuizRepository
	ProgressRepo *repository.ProgressRepository
	now          func() time.Time
}

func NewScoringService(db *gorm.DB, quizRepo *repository.QuizRepository, progressRepo *repository.ProgressRepository) *ScoringService {
	return &ScoringService{
		DB:           db,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
		now:          time.Now,
	}
}

// GradeAnswers 统计答对题数；同一题只计第一次作答，不属于本课程的题目忽略
func GradeAnswers(questions []model.Quiz, answers []model.SubmittedAnswer) int {
	byID := make(map[uint]int, len(questions))
	for _, q := range questions {
		byID[q.ID] = q.CorrectAnswer
	}

	seen := make(map[uint]bool, len(answers))
	correct := 0
	for _, a := range answers {
		expected, ok := byID[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if a.AnswerIndex.Int() == expected {
			correct++
		}
	}
	return correct
}

// ScorePercent round(correct / total * 100)
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Submit grades a full-course submission and appends the attempt to the
// student's progress row. The attempt log read and the append happen in
// one transaction guarded by attempt_count, so a concurrent submission
// for the same row yields a conflict instead of a duplicate number.
func (s *ScoringService) Submit(studentID, courseID uint, answers []model.SubmittedAnswer) (*SubmissionResult, error) {
	if studentID == 0 {
		monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		return nil, util.NewValidationError("Invalid studentId", "studentId")
	}
	if len(answers) == 0 {
		monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		return nil, util.NewValidationError("answers must be a non-empty array", "answers")
	}

	questions, err := s.QuizRepo.ListAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		return nil, util.NewNotFoundError("No quizzes found for this course", map[string]interface{}{"courseId": courseID})
	}

	total := len(questions)
	correct := GradeAnswers(questions, answers)
	score := ScorePercent(correct, total)

	result := &SubmissionResult{Score: score, Correct: correct, Total: total}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.ProgressRepo.WithTx(tx)

		progress, err := repo.FindByStudentAndCourse(studentID, courseID)
		if err != nil {
			return notFoundOr(err, util.ErrNotEnrolled.WithMeta("courseId", courseID))
		}
		if err := model.ValidateStatusTransition(progress.Status, model.StatusCompleted); err != nil {
			return transitionError(err)
		}

		previous := progress.Attempts()
		attempt := model.QuizAttempt{
			Attempt:     len(previous) + 1,
			Answers:     append([]model.SubmittedAnswer(nil), answers...),
			Score:       score,
			SubmittedAt: s.now().UTC().Truncate(time.Second),
		}

		swapped, err := repo.AppendAttempt(progress.ID, len(previous), append(previous, attempt), score)
		if err != nil {
			return err
		}
		if !swapped {
			return util.NewDBConflictError("Concurrent submission detected, please retry", nil)
		}

		updated, err := repo.FindByStudentAndCourse(studentID, courseID)
		if err != nil {
			return err
		}
		result.Attempt = attempt
		result.Progress = updated
		return nil
	})
	if err != nil {
		outcome := "rejected"
		if util.IsKind(err, util.KindConflict) {
			outcome = "conflict"
		}
		monitoring.QuizSubmissions.WithLabelValues(outcome).Inc()
		return nil, err
	}

	monitoring.QuizSubmissions.WithLabelValues("scored").Inc()
	monitoring.QuizScore.Observe(float64(score))
	logger.Log.Info("Quiz submitted",
		zap.Uint("student_id", studentID),
		zap.Uint("course_id", courseID),
		zap.Int("attempt", result.Attempt.Attempt),
		zap.Int("score", score),
	)
	return result, nil
}
