package services

import (
	"fmt"
	"math"
	"time"

	"github.com/trackora/trackora/internal/models"
)

type DashboardLedgerReader interface {
	ListByUserRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.DailyProgress, error)
}

type DashboardService struct {
	ledger DashboardLedgerReader
}

func NewDashboardService(ledger DashboardLedgerReader) *DashboardService {
	return &DashboardService{ledger: ledger}
}

type WeekDay struct {
	Date           time.Time `json:"date"`
	CompletedCount int       `json:"completedCount"`
	IsToday        bool      `json:"isToday"`
}

type WeeklySnapshot struct {
	WeekStart       time.Time `json:"weekStart"`
	WeekEnd         time.Time `json:"weekEnd"`
	Days            []WeekDay `json:"days"`
	ProgressPercent int       `json:"progressPercent"`
}

// BuildWeeklySnapshot summarizes the Monday-start week containing now.
// The percentage is completions against a rough ceiling of the whole
// catalog done every day.
func (service *DashboardService) BuildWeeklySnapshot(userID uint, protocolCount int, now time.Time, location *time.Location) (WeeklySnapshot, error) {
	weekStart := WeekStart(now, location)
	weekEnd := weekStart.AddDate(0, 0, 7)
	today := DateAtLocation(now, location)

	entries, err := service.ledger.ListByUserRange(userID, weekStart, weekEnd)
	if err != nil {
		return WeeklySnapshot{}, err
	}

	countsByDay := make(map[time.Time]int, len(entries))
	for _, entry := range entries {
		countsByDay[DateAtLocation(entry.Date, location)] = len(entry.Completed)
	}

	snapshot := WeeklySnapshot{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
		Days:      make([]WeekDay, 0, 7),
	}
	totalCompleted := 0
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		count := countsByDay[day]
		totalCompleted += count
		snapshot.Days = append(snapshot.Days, WeekDay{
			Date:           day,
			CompletedCount: count,
			IsToday:        day.Equal(today),
		})
	}

	totalPossible := protocolCount * 7
	if totalPossible > 0 {
		snapshot.ProgressPercent = int(math.Round(float64(totalCompleted) / float64(totalPossible) * 100))
	}
	return snapshot, nil
}

// DailyAnalysisText is the short narrative shown under today's list,
// refreshed after every completion.
func DailyAnalysisText(progress models.DailyProgress, user *models.User) string {
	completedCount := len(progress.Completed)
	switch {
	case completedCount == 0:
		return "Complete your first protocol to see analysis."
	case completedCount == 1:
		return "Good start! You've completed 1 protocol. Focus on consistency - try to complete at least 3 protocols daily."
	case completedCount < 3:
		return fmt.Sprintf(
			"Making progress! %d protocols completed. You've spent %d minutes on focused work today. Keep going - you're %d away from your daily goal!",
			completedCount, progress.TotalTime, 3-completedCount,
		)
	default:
		analysis := fmt.Sprintf(
			"Excellent work! %d protocols completed (%d minutes). You earned %d XP today. Your current streak: %d days.",
			completedCount, progress.TotalTime, progress.XPEarned, user.Streak,
		)
		if progress.XPEarned > 0 {
			days := int(math.Ceil(float64(LevelXPThreshold-user.XP) / float64(progress.XPEarned)))
			if days < 1 {
				days = 1
			}
			analysis += fmt.Sprintf(" At this rate, you'll level up in %d days!", days)
		}
		return analysis
	}
}
