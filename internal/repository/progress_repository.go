package repository

import (
	"school_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return mapDBError(r.DB.Create(progress).Error)
}

func (r *ProgressRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return mapDBError(r.DB.Model(&model.Progress{}).Where("id = ?", id).Updates(fields).Error)
}

// AppendAttempt 以 attempt_count 做比较并交换：只有计数仍为 expected 时才写入，
// 返回 false 表示并发提交已先行写入
func (r *ProgressRepository) AppendAttempt(id uint, expected int, attempts []model.QuizAttempt, score int) (bool, error) {
	s := float64(score)
	res := r.DB.Model(&model.Progress{}).
		Where("id = ? AND attempt_count = ?", id, expected).
		Updates(map[string]interface{}{
			"quiz_attempts": datatypes.NewJSONType(attempts),
			"attempt_count": len(attempts),
			"score":         &s,
			"status":        model.StatusCompleted,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, mapDBError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ProgressRepository) CountByStudent(studentID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Progress{}).Where("student_id = ?", studentID).Count(&total).Error
	return total, err
}

// ListEnrolledCourses 学生已选课程，最近选课在前
func (r *ProgressRepository) ListEnrolledCourses(studentID uint, limit, offset int) ([]model.EnrolledCourse, int64, error) {
	total, err := r.CountByStudent(studentID)
	if err != nil {
		return nil, 0, err
	}

	items := []model.EnrolledCourse{}
	err = r.DB.Table("progress p").
		Select("c.id AS course_id, c.title, c.description, c.teacher_id, u.name AS teacher_name, " +
			"p.status, p.score, p.attempt_count, p.created_at AS enrolled_at").
		Joins("JOIN courses c ON c.id = p.course_id").
		Joins("LEFT JOIN users u ON u.id = c.teacher_id").
		Where("p.student_id = ?", studentID).
		Order("p.created_at DESC, p.id DESC").
		Limit(limit).Offset(offset).
		Scan(&items).Error
	return items, total, err
}

// ListCatalog 全部课程目录，附带该学生的选课状态
func (r *ProgressRepository) ListCatalog(studentID uint, limit, offset int) ([]model.CourseWithEnrollment, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		CourseID    uint
		Title       string
		Description string
		TeacherID   uint
		TeacherName string
		ProgressID  *uint
		Status      *string
		Score       *float64
	}
	err := r.DB.Table("courses c").
		Select("c.id AS course_id, c.title, c.description, c.teacher_id, u.name AS teacher_name, "+
			"p.id AS progress_id, p.status, p.score").
		Joins("LEFT JOIN users u ON u.id = c.teacher_id").
		Joins("LEFT JOIN progress p ON p.course_id = c.id AND p.student_id = ?", studentID).
		Order("c.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.CourseWithEnrollment, 0, len(rows))
	for _, row := range rows {
		var status *model.ProgressStatus
		if row.Status != nil {
			st := model.ProgressStatus(*row.Status)
			status = &st
		}
		items = append(items, model.CourseWithEnrollment{
			CourseID:    row.CourseID,
			Title:       row.Title,
			Description: row.Description,
			TeacherID:   row.TeacherID,
			TeacherName: row.TeacherName,
			Enrolled:    row.ProgressID != nil,
			Status:      status,
			Score:       row.Score,
		})
	}
	return items, total, nil
}
