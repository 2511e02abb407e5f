package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

// ReportRepository 教师花名册等只读统计查询
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

// teacherStudents 选修了该教师任一课程的学生 id
func (r *ReportRepository) teacherStudents(teacherID uint) *gorm.DB {
	return r.DB.Table("progress p").
		Select("DISTINCT p.student_id").
		Joins("JOIN courses c ON c.id = p.course_id").
		Where("c.teacher_id = ?", teacherID)
}

func (r *ReportRepository) CountRosterStudents(teacherID uint) (int64, error) {
	var total int64
	err := r.DB.Table("users").
		Where("id IN (?)", r.teacherStudents(teacherID)).
		Count(&total).Error
	return total, err
}

// ListRosterStudents 按姓名（不区分大小写）、邮箱排序分页
func (r *ReportRepository) ListRosterStudents(teacherID uint, limit, offset int) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.Model(&model.User{}).
		Where("id IN (?)", r.teacherStudents(teacherID)).
		Order("LOWER(name) ASC, email ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

// RosterRows 指定学生在该教师课程下的进度，按课程 id 排序
func (r *ReportRepository) RosterRows(teacherID uint, studentIDs []uint) ([]model.RosterRow, error) {
	rows := []model.RosterRow{}
	if len(studentIDs) == 0 {
		return rows, nil
	}
	err := r.DB.Table("progress p").
		Select("p.student_id, c.id AS course_id, c.title, p.status, p.score").
		Joins("JOIN courses c ON c.id = p.course_id").
		Where("c.teacher_id = ? AND p.student_id IN ?", teacherID, studentIDs).
		Order("p.student_id ASC, c.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) LatestOwnedCourses(teacherID uint, n int) ([]model.Course, error) {
	courses := []model.Course{}
	err := r.DB.Model(&model.Course{}).
		Select("courses.*, users.name AS teacher_name").
		Joins("LEFT JOIN users ON users.id = courses.teacher_id").
		Where("courses.teacher_id = ?", teacherID).
		Order("courses.created_at DESC, courses.id DESC").
		Limit(n).
		Find(&courses).Error
	return courses, err
}
