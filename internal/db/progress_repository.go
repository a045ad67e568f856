package db

import (
	"time"

	"github.com/trackora/trackora/internal/models"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	database *gorm.DB
}

func NewProgressRepository(database *gorm.DB) *ProgressRepository {
	return &ProgressRepository{database: database}
}

func (repo *ProgressRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyProgress, bool, error) {
	entry := models.DailyProgress{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyProgress{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyProgress{}, false, nil
	}
	return entry, true, nil
}

func (repo *ProgressRepository) ListByUserRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.DailyProgress, error) {
	entries := make([]models.DailyProgress, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, fromStart, toEnd).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRecentByUser returns recorded days newest first, capped at limit.
// Days without a record are simply absent.
func (repo *ProgressRepository) ListRecentByUser(userID uint, fromStart time.Time, limit int) ([]models.DailyProgress, error) {
	entries := make([]models.DailyProgress, 0)
	query := repo.database.
		Where("user_id = ? AND date >= ?", userID, fromStart).
		Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ProgressRepository) ListByUser(userID uint) ([]models.DailyProgress, error) {
	entries := make([]models.DailyProgress, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ProgressRepository) Create(entry *models.DailyProgress) error {
	return repo.database.Create(entry).Error
}

func (repo *ProgressRepository) Save(entry *models.DailyProgress) error {
	return repo.database.Save(entry).Error
}

// SaveWithUser persists a ledger row and the user aggregate as one
// transaction so a completion event cannot land half-applied.
func (repo *ProgressRepository) SaveWithUser(entry *models.DailyProgress, user *models.User) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		return tx.Save(user).Error
	})
}
