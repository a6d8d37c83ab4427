package repository

import (
	"context"
	"time"

	"govforms/internal/database"
	"govforms/internal/models"
)

type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetInterviewTimeline counts interviews per day since the cutoff.
func GetInterviewTimeline(ctx context.Context, since time.Time) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint
	query := `
		SELECT date_trunc('day', created_at) AS date, COUNT(*) AS value
		FROM interviews
		WHERE created_at >= ?
		GROUP BY date_trunc('day', created_at)
		ORDER BY date;
	`
	err := database.DB.WithContext(ctx).Raw(query, since).Scan(&data).Error
	return data, err
}

// CountInterviewsByStatus groups interviews by lifecycle status.
func CountInterviewsByStatus(ctx context.Context) ([]StatusCount, error) {
	var data []StatusCount
	query := `SELECT status, COUNT(*) AS count FROM interviews GROUP BY status ORDER BY status;`
	err := database.DB.WithContext(ctx).Raw(query).Scan(&data).Error
	return data, err
}

func CountInterviews(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Interview{}).Count(&count).Error
	return count, err
}

func CountCompletedInterviews(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Interview{}).
		Where("status = ?", models.InterviewCompleted).Count(&count).Error
	return count, err
}
