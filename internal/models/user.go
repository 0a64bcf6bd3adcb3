package models

// UserModel is the single local account that owns all wellness data.
type UserModel struct {
	Base
	Username     string `json:"username"      gorm:"type:varchar(80);uniqueIndex;not null"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"             gorm:"type:varchar(191)"`
	AvatarURL    string `json:"avatar,omitempty"`
}

func (UserModel) TableName() string { return "users" }
