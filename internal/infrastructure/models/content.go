package models

import "time"

type Article struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Title      string `gorm:"type:varchar(255);not null"`
	Slug       string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Date       string `gorm:"type:varchar(64);not null"`
	Author     string `gorm:"type:varchar(120)"`
	Snippet    string `gorm:"type:text;not null"`
	Content    string `gorm:"type:text;not null"`
	ImageURL   string `gorm:"type:text"`
	DataAIHint string `gorm:"column:data_ai_hint;type:varchar(120)"`
	CreatedAt  time.Time
}

type Project struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text;not null"`
	ImageURL    string `gorm:"type:text"`
	DataAIHint  string `gorm:"column:data_ai_hint;type:varchar(120)"`
	Location    string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
}

type ContactMessage struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Subject     string    `gorm:"type:varchar(255);not null"`
	Message     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'new';index"`
	SubmittedAt time.Time `gorm:"not null;index"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
