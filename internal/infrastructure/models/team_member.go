package models

import (
	"time"

	"gorm.io/datatypes"
)

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type TeamMember struct {
	ID           string                          `gorm:"type:uuid;primaryKey"`
	Name         string                          `gorm:"type:varchar(120);not null"`
	Role         string                          `gorm:"type:varchar(120);not null"`
	Profession   string                          `gorm:"type:varchar(160);not null"`
	Intro        string                          `gorm:"type:text;not null"`
	ImageURL     string                          `gorm:"type:text;not null;default:''"`
	DataAIHint   string                          `gorm:"column:data_ai_hint;type:varchar(120)"`
	Socials      datatypes.JSONSlice[SocialLink] `gorm:"type:jsonb;not null;default:'[]'"`
	DisplayOrder *int64                          `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TeamMember) TableName() string {
	return "team_members"
}
