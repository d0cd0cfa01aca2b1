package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bilboko-doinuak/models"
)

// StatsService computes the admin dashboard numbers from the profiles
// table. Only available when the remote backend is configured.
type StatsService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewStatsService builds the stats service.
func NewStatsService(db *gorm.DB, log *zap.Logger) *StatsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsService{DB: db, Log: log}
}

// UserStats returns registration totals with month-over-month growth.
func (s *StatsService) UserStats() (*models.UserStats, error) {
	now := time.Now()
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var stats models.UserStats
	if err := s.DB.Model(&models.ProfileRecord{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.DB.Model(&models.ProfileRecord{}).
		Where("created_at >= ?", thisMonthStart).
		Count(&stats.UsersThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count this month's users: %w", err)
	}
	if err := s.DB.Model(&models.ProfileRecord{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, thisMonthStart).
		Count(&stats.UsersLastMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count last month's users: %w", err)
	}

	switch {
	case stats.UsersLastMonth > 0:
		growth := float64(stats.UsersThisMonth-stats.UsersLastMonth) / float64(stats.UsersLastMonth) * 100
		stats.GrowthPercent = math.Round(growth*10) / 10
	case stats.UsersThisMonth > 0:
		stats.GrowthPercent = 100
	}
	return &stats, nil
}

func (s *StatsService) distribution(column string) ([]models.DistributionItem, error) {
	var items []models.DistributionItem
	err := s.DB.Model(&models.ProfileRecord{}).
		Select(column + ", count(*) as count").
		Where(column + " IS NOT NULL").
		Group(column).
		Order("count DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s distribution: %w", column, err)
	}
	return items, nil
}

// AgeDistribution groups registrations by age range.
func (s *StatsService) AgeDistribution() ([]models.DistributionItem, error) {
	return s.distribution("age_range")
}

// GenderDistribution groups registrations by gender.
func (s *StatsService) GenderDistribution() ([]models.DistributionItem, error) {
	return s.distribution("gender")
}

// BarrioDistribution groups registrations by neighborhood.
func (s *StatsService) BarrioDistribution() ([]models.DistributionItem, error) {
	return s.distribution("barrio")
}

// RecentRegistrations returns the latest signups, newest first.
func (s *StatsService) RecentRegistrations(limit int) ([]models.RecentRegistration, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var rows []models.RecentRegistration
	err := s.DB.Model(&models.ProfileRecord{}).
		Select("to_char(created_at, 'YYYY-MM-DD') as fecha, coalesce(age_range, '') as age_range, coalesce(gender, '') as gender, coalesce(barrio, '') as barrio").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent registrations: %w", err)
	}
	return rows, nil
}

// AllStats bundles every dashboard block in one call.
func (s *StatsService) AllStats() (*models.AllStats, error) {
	userStats, err := s.UserStats()
	if err != nil {
		return nil, err
	}
	age, err := s.AgeDistribution()
	if err != nil {
		return nil, err
	}
	gender, err := s.GenderDistribution()
	if err != nil {
		return nil, err
	}
	barrio, err := s.BarrioDistribution()
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentRegistrations(10)
	if err != nil {
		return nil, err
	}
	return &models.AllStats{
		UserStats:           *userStats,
		AgeDistribution:     age,
		GenderDistribution:  gender,
		BarrioDistribution:  barrio,
		RecentRegistrations: recent,
	}, nil
}

// ExportCSV writes the recent-registrations table as CSV.
func (s *StatsService) ExportCSV(w io.Writer, limit int) error {
	rows, err := s.RecentRegistrations(limit)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Fecha", "Edad", "Género", "Barrio"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Fecha, r.AgeRange, r.Gender, r.Barrio}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
