package model

// swagger:model Course
type Course struct {
	BaseModel
	TeacherID   uint   `gorm:"not null;index" json:"teacherId"`
	Teacher     *User  `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// 查询时通过 join users 填充
	TeacherName string `gorm:"->;-:migration" json:"teacherName,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
