package db

import (
	"github.com/trackora/trackora/internal/models"
	"gorm.io/gorm"
)

type ProtocolRepository struct {
	database *gorm.DB
}

func NewProtocolRepository(database *gorm.DB) *ProtocolRepository {
	return &ProtocolRepository{database: database}
}

// ListByUser returns the catalog in creation order, which is the order the
// user sees everywhere.
func (repo *ProtocolRepository) ListByUser(userID uint) ([]models.Protocol, error) {
	protocols := make([]models.Protocol, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&protocols).Error; err != nil {
		return nil, err
	}
	return protocols, nil
}

func (repo *ProtocolRepository) FindByIDForUser(protocolID uint, userID uint) (models.Protocol, bool, error) {
	protocol := models.Protocol{}
	result := repo.database.
		Where("id = ? AND user_id = ?", protocolID, userID).
		Limit(1).
		Find(&protocol)
	if result.Error != nil {
		return models.Protocol{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Protocol{}, false, nil
	}
	return protocol, true, nil
}

func (repo *ProtocolRepository) Create(protocol *models.Protocol) error {
	return repo.database.Create(protocol).Error
}

func (repo *ProtocolRepository) CreateBatch(protocols []models.Protocol) error {
	if len(protocols) == 0 {
		return nil
	}
	return repo.database.Create(&protocols).Error
}

// DeleteByIDForUser removes a catalog entry. Historical ledger rows keep any
// reference to the deleted ID.
func (repo *ProtocolRepository) DeleteByIDForUser(protocolID uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", protocolID, userID).Delete(&models.Protocol{}).Error
}
