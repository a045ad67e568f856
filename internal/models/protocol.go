package models

import "time"

const (
	CategoryCoding   = "coding"
	CategoryLearning = "learning"
	CategoryReview   = "review"
	CategoryPlanning = "planning"
	CategoryOther    = "other"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// XPMinutesPerPoint is the default derivation used when a protocol is
// created without an explicit XP value: one point per five minutes.
const XPMinutesPerPoint = 5

type Protocol struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	Time        int       `gorm:"not null" json:"time"`
	XP          int       `gorm:"not null" json:"xp"`
	Priority    string    `gorm:"not null;default:medium" json:"priority"`
	IsDefault   bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

func Categories() []string {
	return []string{CategoryCoding, CategoryLearning, CategoryReview, CategoryPlanning, CategoryOther}
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryCoding, CategoryLearning, CategoryReview, CategoryPlanning, CategoryOther:
		return true
	default:
		return false
	}
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type DefaultProtocol struct {
	Title       string
	Description string
	Category    string
	Time        int
	XP          int
	Priority    string
}

// DefaultProtocols is the starter catalog seeded for every new account.
func DefaultProtocols() []DefaultProtocol {
	return []DefaultProtocol{
		{Title: "Morning Code Review", Description: "Review yesterday's code and plan today's work", Category: CategoryReview, Time: 30, XP: 15, Priority: PriorityHigh},
		{Title: "Focused Coding Session", Description: "25 minutes of uninterrupted coding", Category: CategoryCoding, Time: 25, XP: 10, Priority: PriorityMedium},
		{Title: "Learn Something New", Description: "Study a new concept or technology", Category: CategoryLearning, Time: 45, XP: 20, Priority: PriorityMedium},
		{Title: "Evening Reflection", Description: "Review what you accomplished and plan for tomorrow", Category: CategoryReview, Time: 15, XP: 5, Priority: PriorityLow},
	}
}
