package model

import (
	"gorm.io/datatypes"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID      uint                          `gorm:"not null;index" json:"courseId"`
	Course        *Course                       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Question      string                        `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONType[OptionMap] `gorm:"not null" json:"options"`
	CorrectAnswer int                           `gorm:"not null;check:chk_quizzes_correct,correct_answer >= 1" json:"correctAnswer"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// OptionMap 返回已解码的选项表，数据为空时返回空表
func (q *Quiz) OptionMap() OptionMap {
	m := q.Options.Data()
	if m == nil {
		return OptionMap{}
	}
	return m
}

// StudentQuiz 学生视角下的题目，不含正确答案
type StudentQuiz struct {
	ID       uint      `json:"id"`
	CourseID uint      `json:"courseId"`
	Question string    `json:"question"`
	Options  OptionMap `json:"options"`
}

func (q *Quiz) ForStudent() StudentQuiz {
	return StudentQuiz{
		ID:       q.ID,
		CourseID: q.CourseID,
		Question: q.Question,
		Options:  q.OptionMap(),
	}
}
