package services

import (
	"strconv"
	"strings"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"gorm.io/gorm"
)

// Stat names that exist only in history. Practice totals are recorded
// as data points but never written into the profile blob.
var historyOnlyStats = map[string]bool{
	"sat_total":     true,
	"act_composite": true,
}

// StatsService records stat data points and maintains the editable
// stat blob on the user row.
type StatsService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewStatsService creates a StatsService.
func NewStatsService(db *gorm.DB, activity *ActivityService) *StatsService {
	return &StatsService{db: db, activity: activity}
}

// RecordStat appends a stat data point. For profile stats it also
// updates the user's stat blob and logs the change; derived practice
// scores only land in history.
func (s *StatsService) RecordStat(userID uint, name, value string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		point := models.StatHistory{UserID: userID, StatName: name, StatValue: value}
		if err := tx.Create(&point).Error; err != nil {
			return err
		}

		if historyOnlyStats[name] {
			return nil
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if !user.Stats.Set(name, value) {
			return ErrUnknownStat
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		return s.activity.Log(tx, userID, models.ActivityStatUpdated, map[string]any{
			"stat_name":  strings.ToUpper(name),
			"stat_value": value,
		})
	})
}

// History returns the newest stat data points for a user, newest
// first.
func (s *StatsService) History(userID uint, limit int) ([]models.StatHistory, error) {
	if limit < 1 {
		limit = 20
	}
	var points []models.StatHistory
	err := s.db.Where("user_id = ?", userID).
		Order("recorded_at desc, id desc").
		Limit(limit).
		Find(&points).Error
	return points, err
}

// SATTotal derives the combined SAT score from a profile, or "" when
// either section is missing or non-numeric.
func SATTotal(stats models.StatProfile) string {
	math, errM := strconv.Atoi(stats.SATMath)
	ebrw, errE := strconv.Atoi(stats.SATEBRW)
	if errM != nil || errE != nil {
		return ""
	}
	return strconv.Itoa(math + ebrw)
}

// ACTAverage derives the rounded mean of the ACT sections present in a
// profile, or "" when none parse.
func ACTAverage(stats models.StatProfile) string {
	var sum, n int
	for _, v := range []string{stats.ACTMath, stats.ACTReading, stats.ACTScience} {
		if score, err := strconv.Atoi(v); err == nil {
			sum += score
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return strconv.Itoa((sum + n/2) / n)
}
