package service

import (
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
)

// TeacherStudentService 教师视角的学生花名册
type TeacherStudentService struct {
	ReportRepo *repository.ReportRepository
	UserRepo   *repository.UserRepository
}

func NewTeacherStudentService(reportRepo *repository.ReportRepository, userRepo *repository.UserRepository) *TeacherStudentService {
	return &TeacherStudentService{
		ReportRepo: reportRepo,
		UserRepo:   userRepo,
	}
}

// List 按学生分页，每个学生附带其在本教师课程下的进度
func (s *TeacherStudentService) List(teacherID uint, page util.Pagination) ([]model.RosterStudent, int64, error) {
	total, err := s.ReportRepo.CountRosterStudents(teacherID)
	if err != nil {
		return nil, 0, err
	}

	students, err := s.ReportRepo.ListRosterStudents(teacherID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.group(teacherID, students)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Detail 学生未选修本教师任何课程时返回 NotFound
func (s *TeacherStudentService) Detail(teacherID, studentID uint) (*model.RosterStudent, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, notFoundOr(err, util.NewNotFoundError("Student not found", map[string]interface{}{"studentId": studentID}))
	}

	items, err := s.group(teacherID, []model.User{*student})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || len(items[0].Courses) == 0 {
		return nil, util.NewNotFoundError("Student is not enrolled in any of your courses", map[string]interface{}{"studentId": studentID})
	}
	return &items[0], nil
}

// All 导出用，不分页
func (s *TeacherStudentService) All(teacherID uint) ([]model.RosterStudent, error) {
	total, err := s.ReportRepo.CountRosterStudents(teacherID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []model.RosterStudent{}, nil
	}
	students, err := s.ReportRepo.ListRosterStudents(teacherID, int(total), 0)
	if err != nil {
		return nil, err
	}
	return s.group(teacherID, students)
}

func (s *TeacherStudentService) group(teacherID uint, students []model.User) ([]model.RosterStudent, error) {
	ids := make([]uint, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}

	rows, err := s.ReportRepo.RosterRows(teacherID, ids)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint][]model.RosterCourse, len(students))
	for _, row := range rows {
		byStudent[row.StudentID] = append(byStudent[row.StudentID], model.RosterCourse{
			CourseID: row.CourseID,
			Title:    row.Title,
			Status:   row.Status,
			Score:    row.Score,
		})
	}

	items := make([]model.RosterStudent, 0, len(students))
	for _, st := range students {
		courses := byStudent[st.ID]
		if courses == nil {
			courses = []model.RosterCourse{}
		}
		items = append(items, model.RosterStudent{
			StudentID: st.ID,
			Name:      st.Name,
			Email:     st.Email,
			Courses:   courses,
		})
	}
	return items, nil
}
