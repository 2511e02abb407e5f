package model

import (
	"time"
)

type UserRole string

const (
	Teacher UserRole = "Teacher"
	Student UserRole = "Student"
)

func (r UserRole) Valid() bool {
	return r == Teacher || r == Student
}

// swagger:model User
// 角色在注册时确定，之后不可修改
type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:20;not null;check:chk_users_role,role IN ('Teacher','Student')" json:"role"`
	Avatar       string   `gorm:"size:255" json:"avatar,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser 对外暴露的用户字段（不含密码哈希）
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
