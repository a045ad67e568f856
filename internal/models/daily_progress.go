package models

import "time"

// DailyProgress is the per-user, per-calendar-day completion ledger.
// Completed keeps protocol IDs in the order they were checked off; IDs of
// protocols deleted later stay in historical rows and are skipped by
// read-side consumers.
type DailyProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_progress_user_date" json:"userId"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_progress_user_date" json:"date"`
	Completed []uint    `gorm:"serializer:json" json:"completed"`
	TotalTime int       `gorm:"not null;default:0" json:"totalTime"`
	XPEarned  int       `gorm:"not null;default:0" json:"xpEarned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (progress *DailyProgress) HasCompleted(protocolID uint) bool {
	for _, id := range progress.Completed {
		if id == protocolID {
			return true
		}
	}
	return false
}
