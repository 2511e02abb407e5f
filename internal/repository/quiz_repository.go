package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return mapDBError(r.DB.Create(quiz).Error)
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// List courseID 为 0 时不过滤，按创建顺序返回
func (r *QuizRepository) List(courseID uint, limit, offset int) ([]model.Quiz, int64, error) {
	query := r.DB.Model(&model.Quiz{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	quizzes := []model.Quiz{}
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&quizzes).Error
	return quizzes, total, err
}

// ListAllByCourse 评分时加载课程全部题目，不分页
func (r *QuizRepository) ListAllByCourse(courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return mapDBError(r.DB.Model(&model.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{
			"course_id":      quiz.CourseID,
			"question":       quiz.Question,
			"options":        quiz.Options,
			"correct_answer": quiz.CorrectAnswer,
		}).Error)
}

func (r *QuizRepository) Delete(id uint) (int64, error) {
	res := r.DB.Delete(&model.Quiz{}, id)
	return res.RowsAffected, mapDBError(res.Error)
}
