package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	StatusEnrolled   ProgressStatus = "enrolled"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

var statusRank = map[ProgressStatus]int{
	StatusEnrolled:   0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

var ErrIllegalTransition = errors.New("illegal status transition")

func (s ProgressStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// ValidateStatusTransition 状态只能前进或保持不变
func ValidateStatusTransition(prev, next ProgressStatus) error {
	p, ok := statusRank[prev]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, prev)
	}
	n, ok := statusRank[next]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, next)
	}
	if n < p {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, prev, next)
	}
	return nil
}

// SubmittedAnswer 学生提交的单题答案
type SubmittedAnswer struct {
	QuestionID  uint    `json:"questionId"`
	AnswerIndex FlexInt `json:"answerIndex"`
}

// QuizAttempt 嵌入在 Progress 中的提交记录，只追加不修改
type QuizAttempt struct {
	Attempt     int               `json:"attempt"`
	Answers     []SubmittedAnswer `json:"answers"`
	Score       int               `json:"score"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// swagger:model Progress
type Progress struct {
	BaseModel
	StudentID    uint                              `gorm:"not null;uniqueIndex:uk_progress_student_course" json:"studentId"`
	Student      *User                             `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	CourseID     uint                              `gorm:"not null;uniqueIndex:uk_progress_student_course;index" json:"courseId"`
	Course       *Course                           `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Status       ProgressStatus                    `gorm:"size:20;not null;check:chk_progress_status,status IN ('enrolled','in_progress','completed')" json:"status"`
	Score        *float64                          `gorm:"check:chk_progress_score,score IS NULL OR (score >= 0 AND score <= 100)" json:"score"`
	QuizAttempts datatypes.JSONType[[]QuizAttempt] `json:"quizAttempts"`
	AttemptCount int                               `gorm:"not null;default:0" json:"attemptCount"`
}

func (Progress) TableName() string {
	return "progress"
}

func NewProgress(studentID, courseID uint) *Progress {
	return &Progress{
		StudentID:    studentID,
		CourseID:     courseID,
		Status:       StatusEnrolled,
		QuizAttempts: datatypes.NewJSONType([]QuizAttempt{}),
	}
}

// Attempts 返回提交记录副本，保证非 nil
func (p *Progress) Attempts() []QuizAttempt {
	stored := p.QuizAttempts.Data()
	out := make([]QuizAttempt, len(stored))
	copy(out, stored)
	return out
}

// EnrolledCourse 学生已选课程（含课程信息）
type EnrolledCourse struct {
	CourseID     uint           `json:"courseId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	TeacherID    uint           `json:"teacherId"`
	TeacherName  string         `json:"teacherName"`
	Status       ProgressStatus `json:"status"`
	Score        *float64       `json:"score"`
	AttemptCount int            `json:"attemptCount"`
	EnrolledAt   time.Time      `json:"enrolledAt"`
}

// CourseWithEnrollment 课程目录项，附带当前学生的选课状态
type CourseWithEnrollment struct {
	CourseID    uint            `json:"courseId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TeacherID   uint            `json:"teacherId"`
	TeacherName string          `json:"teacherName"`
	Enrolled    bool            `json:"enrolled"`
	Status      *ProgressStatus `json:"status"`
	Score       *float64        `json:"score"`
}
