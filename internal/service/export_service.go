package service

import (
	"bytes"
	"fmt"
	"school_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Roster"

// ExportService 生成花名册表格
type ExportService struct {
	Roster *TeacherStudentService
}

func NewExportService(roster *TeacherStudentService) *ExportService {
	return &ExportService{Roster: roster}
}

// RosterXLSX 每行一个 (学生, 课程) 组合
func (s *ExportService) RosterXLSX(teacherID uint) ([]byte, error) {
	students, err := s.Roster.All(teacherID)
	if err != nil {
		return nil, err
	}
	return BuildRosterWorkbook(students)
}

func BuildRosterWorkbook(students []model.RosterStudent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Student ID", "Name", "Email", "Course ID", "Course", "Status", "Score"}
	if err := f.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, st := range students {
		for _, c := range st.Courses {
			var score interface{}
			if c.Score != nil {
				score = *c.Score
			}
			values := []interface{}{st.StudentID, st.Name, st.Email, c.CourseID, c.Title, string(c.Status), score}
			if err := f.SetSheetRow(rosterSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := f.SetColWidth(rosterSheet, "B", "C", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(rosterSheet, "E", "E", 36); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
