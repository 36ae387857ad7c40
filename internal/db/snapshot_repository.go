package db

import (
	"time"

	"github.com/terraincognita07/skycast/internal/models"
	"gorm.io/gorm"
)

type SnapshotRepository struct {
	database *gorm.DB
}

func NewSnapshotRepository(database *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{database: database}
}

// Append inserts one snapshot row. Snapshots are never updated.
func (repo *SnapshotRepository) Append(snapshot *models.WeatherSnapshot) error {
	return repo.database.Create(snapshot).Error
}

func (repo *SnapshotRepository) CountByCity(cityName string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.WeatherSnapshot{}).
		Where("city_name = ?", cityName).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *SnapshotRepository) ListByCity(cityName string, limit int) ([]models.WeatherSnapshot, error) {
	snapshots := make([]models.WeatherSnapshot, 0)
	query := repo.database.
		Where("city_name = ?", cityName).
		Order("captured_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DeleteCapturedBefore removes snapshot rows captured before cutoff and
// reports how many were removed.
func (repo *SnapshotRepository) DeleteCapturedBefore(cutoff time.Time) (int64, error) {
	result := repo.database.
		Where("captured_at < ?", cutoff).
		Delete(&models.WeatherSnapshot{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
