package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/currency"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// settingsService handles user settings.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetUserSettings returns the user's settings, creating them with the
// default currency on first access. Creation goes through an ON
// CONFLICT DO NOTHING upsert against the user_id key, so two
// first-time requests racing each other both end up reading the single
// surviving row.
func (s *settingsService) GetUserSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.UserSettings{UserID: userID, Currency: currency.DefaultCode}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateUserCurrency sets the user's preferred currency, creating the
// settings row if it does not exist yet.
func (s *settingsService) UpdateUserCurrency(userID, currencyCode string) (*models.UserSettings, error) {
	if !currency.IsSupported(currencyCode) {
		return nil, apperrors.ErrUnsupportedCurrency
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"currency": currencyCode}),
	}).Create(&models.UserSettings{UserID: userID, Currency: currencyCode}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var settings models.UserSettings
	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}
