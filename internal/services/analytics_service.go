package services

import (
	"fmt"
	"math"
	"time"

	"github.com/trackora/trackora/internal/models"
)

// HistoryWindowDays bounds how far back analytics scans. Days without a
// record are absent from the scan, not zero-filled.
const HistoryWindowDays = 365

type AnalyticsLedgerReader interface {
	ListRecentByUser(userID uint, fromStart time.Time, limit int) ([]models.DailyProgress, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyProgress, bool, error)
}

type AnalyticsCatalogReader interface {
	ListByUser(userID uint) ([]models.Protocol, error)
}

type AnalyticsService struct {
	ledger  AnalyticsLedgerReader
	catalog AnalyticsCatalogReader
}

func NewAnalyticsService(ledger AnalyticsLedgerReader, catalog AnalyticsCatalogReader) *AnalyticsService {
	return &AnalyticsService{
		ledger:  ledger,
		catalog: catalog,
	}
}

type CategoryBreakdown struct {
	Category     string `json:"category"`
	Count        int    `json:"count"`
	TotalMinutes int    `json:"totalMinutes"`
}

type MonthlySummary struct {
	Month          string `json:"month"`
	Protocols      int    `json:"protocols"`
	Hours          int    `json:"hours"`
	CompletionRate int    `json:"completionRate"`
}

type Overview struct {
	TotalProtocols int                 `json:"totalProtocols"`
	TotalHours     int                 `json:"totalHours"`
	AvgCompletion  int                 `json:"avgCompletion"`
	CurrentStreak  int                 `json:"currentStreak"`
	BestStreak     int                 `json:"bestStreak"`
	WeeklyTrend    string              `json:"weeklyTrend"`
	Recommendation string              `json:"recommendation"`
	Monthly        MonthlySummary      `json:"monthly"`
	Categories     []CategoryBreakdown `json:"categories"`
}

// BuildOverview computes the full read-side rollup. Nothing here is
// persisted; the ledger and catalog stay the only sources of truth.
func (service *AnalyticsService) BuildOverview(user *models.User, now time.Time, location *time.Location) (Overview, error) {
	windowStart := DateAtLocation(now, location).AddDate(0, 0, -(HistoryWindowDays - 1))
	entries, err := service.ledger.ListRecentByUser(user.ID, windowStart, HistoryWindowDays)
	if err != nil {
		return Overview{}, err
	}

	protocols, err := service.catalog.ListByUser(user.ID)
	if err != nil {
		return Overview{}, err
	}

	dayStart, dayEnd := DayRange(now, location)
	today, todayRecorded, err := service.ledger.FindByUserAndDayRange(user.ID, dayStart, dayEnd)
	if err != nil {
		return Overview{}, err
	}

	todayCompleted := 0
	if todayRecorded {
		todayCompleted = len(today.Completed)
	}

	return Overview{
		TotalProtocols: user.TotalProtocols,
		TotalHours:     int(math.Round(user.TotalHours)),
		AvgCompletion:  AverageCompletionRate(entries),
		CurrentStreak:  user.Streak,
		BestStreak:     user.BestStreak,
		WeeklyTrend:    WeeklyTrendText(entries),
		Recommendation: RecommendationText(todayRecorded, todayCompleted),
		Monthly:        MonthlyRollup(entries, now, location),
		Categories:     CategoryBreakdowns(protocols),
	}, nil
}

// AverageCompletionRate is the percentage of recorded days that have at
// least one completion.
func AverageCompletionRate(entries []models.DailyProgress) int {
	if len(entries) == 0 {
		return 0
	}
	completedDays := 0
	for _, entry := range entries {
		if len(entry.Completed) > 0 {
			completedDays++
		}
	}
	return int(math.Round(float64(completedDays) / float64(len(entries)) * 100))
}

// WeeklyTrendText compares the seven most recent recorded days against the
// seven before them. The slices are recorded days, not calendar weeks, so
// sparse trackers see their last two stretches of activity. entries must be
// ordered newest first.
func WeeklyTrendText(entries []models.DailyProgress) string {
	if len(entries) < 7 {
		return "Not enough data yet"
	}

	completedLastWeek := sumCompleted(entries[:7])
	if len(entries) < 14 {
		return fmt.Sprintf("%d protocols completed last week", completedLastWeek)
	}

	completedPreviousWeek := sumCompleted(entries[7:14])
	change := completedLastWeek - completedPreviousWeek
	switch {
	case change > 0:
		return fmt.Sprintf("Up %d protocols from previous week", change)
	case change < 0:
		return fmt.Sprintf("Down %d protocols from previous week", -change)
	default:
		return "Same as previous week"
	}
}

func sumCompleted(entries []models.DailyProgress) int {
	total := 0
	for _, entry := range entries {
		total += len(entry.Completed)
	}
	return total
}

// RecommendationText picks the coaching line for today by simple
// thresholds on the completed count.
func RecommendationText(todayRecorded bool, todayCompleted int) string {
	if !todayRecorded {
		return "Start your day with a morning code review protocol!"
	}
	switch {
	case todayCompleted == 0:
		return "Try completing at least one protocol today to build momentum!"
	case todayCompleted < 3:
		return "Great start! Try to complete 3 protocols daily for best results."
	default:
		return "Excellent! Consider adding a learning protocol to expand your skills."
	}
}

// MonthlyRollup aggregates the recorded days falling inside the current
// calendar month.
func MonthlyRollup(entries []models.DailyProgress, now time.Time, location *time.Location) MonthlySummary {
	reference := DateAtLocation(now, location)
	summary := MonthlySummary{Month: reference.Format("January 2006")}

	monthDays := 0
	completedDays := 0
	totalMinutes := 0
	for _, entry := range entries {
		entryDay := DateAtLocation(entry.Date, location)
		if entryDay.Year() != reference.Year() || entryDay.Month() != reference.Month() {
			continue
		}
		monthDays++
		summary.Protocols += len(entry.Completed)
		totalMinutes += entry.TotalTime
		if len(entry.Completed) > 0 {
			completedDays++
		}
	}

	summary.Hours = int(math.Round(float64(totalMinutes) / 60))
	if monthDays > 0 {
		summary.CompletionRate = int(math.Round(float64(completedDays) / float64(monthDays) * 100))
	}
	return summary
}

// CategoryBreakdowns reflects catalog composition (entry counts and nominal
// minutes), not time actually spent. Categories with no protocols are
// omitted.
func CategoryBreakdowns(protocols []models.Protocol) []CategoryBreakdown {
	totals := make(map[string]*CategoryBreakdown, len(models.Categories()))
	for _, protocol := range protocols {
		category := protocol.Category
		if !models.IsValidCategory(category) {
			category = models.CategoryOther
		}
		if totals[category] == nil {
			totals[category] = &CategoryBreakdown{Category: category}
		}
		totals[category].Count++
		totals[category].TotalMinutes += protocol.Time
	}

	breakdowns := make([]CategoryBreakdown, 0, len(totals))
	for _, category := range models.Categories() {
		if aggregate := totals[category]; aggregate != nil {
			breakdowns = append(breakdowns, *aggregate)
		}
	}
	return breakdowns
}
