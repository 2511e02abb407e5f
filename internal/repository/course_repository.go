package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// withTeacher 查询课程时带出教师姓名
func (r *CourseRepository) withTeacher() *gorm.DB {
	return r.DB.Model(&model.Course{}).
		Select("courses.*, users.name AS teacher_name").
		Joins("LEFT JOIN users ON users.id = courses.teacher_id")
}

func (r *CourseRepository) Create(course *model.Course) error {
	return mapDBError(r.DB.Create(course).Error)
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.withTeacher().Where("courses.id = ?", id).Take(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// List teacherID 为 0 时列出全部课程，按 id 倒序
func (r *CourseRepository) List(teacherID uint, limit, offset int) ([]model.Course, int64, error) {
	total, err := r.Count(teacherID)
	if err != nil {
		return nil, 0, err
	}

	query := r.withTeacher()
	if teacherID != 0 {
		query = query.Where("courses.teacher_id = ?", teacherID)
	}

	courses := []model.Course{}
	err = query.Order("courses.id DESC").Limit(limit).Offset(offset).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Count(teacherID uint) (int64, error) {
	query := r.DB.Model(&model.Course{})
	if teacherID != 0 {
		query = query.Where("teacher_id = ?", teacherID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *CourseRepository) Update(id uint, fields map[string]interface{}) error {
	return mapDBError(r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields).Error)
}

// Delete 题目与选课记录由外键级联删除
func (r *CourseRepository) Delete(id uint) (int64, error) {
	res := r.DB.Delete(&model.Course{}, id)
	return res.RowsAffected, mapDBError(res.Error)
}
