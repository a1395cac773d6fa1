package models

import (
	"time"
)

// Role 是封闭的角色集合
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Valid 判断角色是否属于已知集合
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User 对应于数据库中的 users 表
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"column:username;uniqueIndex;not null;size:20"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Email        string    `json:"email" gorm:"column:email;uniqueIndex;not null;size:255"`
	Phone        string    `json:"phone" gorm:"column:phone;uniqueIndex;not null;size:20"`
	Role         Role      `json:"role" gorm:"column:role;not null;default:'ROLE_USER';size:20"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// UserCredentials 是登录校验所需的最小信息
type UserCredentials struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// RegistrationInput 是注册表单/请求体
type RegistrationInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"password" form:"password"`
}
