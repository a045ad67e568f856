package services

import (
	"time"

	"github.com/trackora/trackora/internal/models"
)

// XPPointsPerHour converts earned XP into the lifetime hours approximation
// kept on the user record. It is a deliberate approximation, not elapsed
// time.
const XPPointsPerHour = 12.0

// LevelXPThreshold is the XP distance the level-up projection in the daily
// analysis counts toward.
const LevelXPThreshold = 100

// ApplyCompletionToUser folds one completion event into the user aggregate:
// XP, streak, best streak, lifetime totals and the last-completion marker.
// today must already be day-normalized for the tracker's location.
//
// Un-completing a protocol never calls this; the aggregate is
// intentionally not reversed.
func ApplyCompletionToUser(user *models.User, earnedXP int, today time.Time, location *time.Location) {
	yesterday := today.AddDate(0, 0, -1)
	last := user.LastCompletionDate

	switch {
	case last != nil && SameCalendarDay(*last, yesterday, location):
		user.Streak++
		if user.Streak > user.BestStreak {
			user.BestStreak = user.Streak
		}
	case last == nil || !SameCalendarDay(*last, today, location):
		// A gap of two or more days restarts the streak at one, not zero.
		user.Streak = 1
	}

	user.XP += earnedXP
	user.TotalProtocols++
	user.TotalHours += float64(earnedXP) / XPPointsPerHour

	marker := today
	user.LastCompletionDate = &marker
}
