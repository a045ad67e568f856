package models

import "time"

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	XP                 int        `gorm:"not null;default:0" json:"xp"`
	Level              int        `gorm:"not null;default:1" json:"level"`
	Streak             int        `gorm:"not null;default:0" json:"streak"`
	BestStreak         int        `gorm:"not null;default:0" json:"bestStreak"`
	TotalProtocols     int        `gorm:"not null;default:0" json:"totalProtocols"`
	TotalHours         float64    `gorm:"not null;default:0" json:"totalHours"`
	LastCompletionDate *time.Time `gorm:"type:date" json:"lastCompletionDate,omitempty"`
	CreatedAt          time.Time  `gorm:"not null" json:"createdAt"`
}
