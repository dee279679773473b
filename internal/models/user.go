package models

import "time"

// UserModel represents a registered account. Regular users submit quotes;
// moderation rights come from IsStaff or membership in the Moderator group.
type UserModel struct {
	Base
	Username      string       `json:"username" gorm:"uniqueIndex;not null"`
	Name          string       `json:"name"`
	Password      string       `json:"-"        gorm:"not null"`
	IsStaff       bool         `json:"is_staff" gorm:"default:false"`
	Groups        []GroupModel `json:"groups,omitempty" gorm:"many2many:user_groups"`
	LastLoginTime *time.Time   `json:"last_login_time"`
	LastLoginIP   string       `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }

// GroupModel is a named permission group ("Moderator").
type GroupModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (GroupModel) TableName() string { return "groups" }

// ModeratorGroup is the group whose members get moderation rights.
const ModeratorGroup = "Moderator"
