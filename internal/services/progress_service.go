package services

import (
	"errors"
	"time"

	"github.com/trackora/trackora/internal/models"
)

var (
	ErrProgressLoadFailed   = errors.New("load daily progress failed")
	ErrProgressSaveFailed   = errors.New("save daily progress failed")
	ErrProtocolNotInCatalog = errors.New("protocol not in catalog")
)

type LedgerRepository interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyProgress, bool, error)
	Create(entry *models.DailyProgress) error
	Save(entry *models.DailyProgress) error
	SaveWithUser(entry *models.DailyProgress, user *models.User) error
}

type LedgerProtocolReader interface {
	FindByIDForUser(protocolID uint, userID uint) (models.Protocol, bool, error)
}

type ProgressService struct {
	ledger    LedgerRepository
	protocols LedgerProtocolReader
}

func NewProgressService(ledger LedgerRepository, protocols LedgerProtocolReader) *ProgressService {
	return &ProgressService{
		ledger:    ledger,
		protocols: protocols,
	}
}

func emptyProgress(userID uint, dayStart time.Time) models.DailyProgress {
	return models.DailyProgress{
		UserID:    userID,
		Date:      dayStart,
		Completed: []uint{},
	}
}

// FetchDay loads the ledger record for the given calendar day, returning an
// unsaved empty record when none exists yet. Records are created lazily on
// the first mutation, not on read.
func (service *ProgressService) FetchDay(userID uint, day time.Time, location *time.Location) (models.DailyProgress, error) {
	dayStart, dayEnd := DayRange(day, location)
	entry, found, err := service.ledger.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyProgress{}, ErrProgressLoadFailed
	}
	if !found {
		return emptyProgress(userID, dayStart), nil
	}
	if entry.Completed == nil {
		entry.Completed = []uint{}
	}
	return entry, nil
}

// SeedToday writes the initial empty record for a fresh account.
func (service *ProgressService) SeedToday(userID uint, now time.Time, location *time.Location) (models.DailyProgress, error) {
	dayStart, _ := DayRange(now, location)
	entry := emptyProgress(userID, dayStart)
	if err := service.ledger.Create(&entry); err != nil {
		return models.DailyProgress{}, ErrProgressSaveFailed
	}
	return entry, nil
}

// ToggleCompletion flips a protocol in today's ledger. Checking a protocol
// off adds its time and XP and applies the one-way stat aggregate update in
// the same transaction; unchecking only reverses the day's totals. A
// protocol ID missing from the catalog leaves the ledger untouched; this
// also covers IDs whose protocol was deleted after being completed.
func (service *ProgressService) ToggleCompletion(user *models.User, protocolID uint, now time.Time, location *time.Location) (models.DailyProgress, bool, error) {
	protocol, found, err := service.protocols.FindByIDForUser(protocolID, user.ID)
	if err != nil {
		return models.DailyProgress{}, false, ErrProgressLoadFailed
	}

	entry, err := service.FetchDay(user.ID, now, location)
	if err != nil {
		return models.DailyProgress{}, false, err
	}
	if !found {
		return entry, false, ErrProtocolNotInCatalog
	}

	if entry.HasCompleted(protocolID) {
		entry.Completed = RemoveUint(entry.Completed, protocolID)
		entry.TotalTime -= protocol.Time
		entry.XPEarned -= protocol.XP
		if err := service.ledger.Save(&entry); err != nil {
			return models.DailyProgress{}, false, ErrProgressSaveFailed
		}
		return entry, false, nil
	}

	entry.Completed = append(entry.Completed, protocolID)
	entry.TotalTime += protocol.Time
	entry.XPEarned += protocol.XP

	today := DateAtLocation(now, location)
	ApplyCompletionToUser(user, protocol.XP, today, location)

	if err := service.ledger.SaveWithUser(&entry, user); err != nil {
		return models.DailyProgress{}, false, ErrProgressSaveFailed
	}
	return entry, true, nil
}

// ResetDay replaces today's record with an empty one of the same shape.
// Historical days and the user aggregate are left alone.
func (service *ProgressService) ResetDay(userID uint, now time.Time, location *time.Location) (models.DailyProgress, error) {
	dayStart, dayEnd := DayRange(now, location)
	entry, found, err := service.ledger.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyProgress{}, ErrProgressLoadFailed
	}

	if !found {
		entry = emptyProgress(userID, dayStart)
		if err := service.ledger.Create(&entry); err != nil {
			return models.DailyProgress{}, ErrProgressSaveFailed
		}
		return entry, nil
	}

	entry.Completed = []uint{}
	entry.TotalTime = 0
	entry.XPEarned = 0
	if err := service.ledger.Save(&entry); err != nil {
		return models.DailyProgress{}, ErrProgressSaveFailed
	}
	return entry, nil
}
