package concurrent

import (
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/monitoring"
	"sync"
)

// DashboardStats is the admin dashboard aggregate, each figure computed by
// its own goroutine.
type DashboardStats struct {
	TotalUsers     int64   `json:"totalUsers"`
	TotalGames     int64   `json:"totalGames"`
	TotalReviews   int64   `json:"totalReviews"`
	TotalComments  int64   `json:"totalComments"`
	TotalFeedbacks int64   `json:"totalFeedbacks"`
	TotalLikes     int64   `json:"totalLikes"`
	AverageRating  float64 `json:"averageRating"`
	TopGenre       string  `json:"topGenre"`
}

// CalculateDashboardStats fans the independent aggregate queries out over
// goroutines and waits for all of them.
func CalculateDashboardStats() *DashboardStats {
	stats := &DashboardStats{}
	var wg sync.WaitGroup

	count := func(model interface{}, dest *int64) {
		defer wg.Done()
		db.DB.Model(model).Count(dest)
	}

	wg.Add(6)
	go count(&models.User{}, &stats.TotalUsers)
	go count(&models.Game{}, &stats.TotalGames)
	go count(&models.Review{}, &stats.TotalReviews)
	go count(&models.Comment{}, &stats.TotalComments)
	go count(&models.Feedback{}, &stats.TotalFeedbacks)
	go count(&models.GameLike{}, &stats.TotalLikes)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var avg struct{ Avg float64 }
		db.DB.Model(&models.Review{}).Select("COALESCE(AVG(rating), 0) as avg").Scan(&avg)
		stats.AverageRating = avg.Avg
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var top struct {
			GenreID uint
			Count   int64
		}
		db.DB.Model(&models.Game{}).
			Select("genre_id, COUNT(*) as count").
			Group("genre_id").
			Order("count DESC").
			Limit(1).
			Scan(&top)
		if top.GenreID != 0 {
			var genre models.Genre
			if err := db.DB.First(&genre, top.GenreID).Error; err == nil {
				stats.TopGenre = genre.Name
			}
		}
	}()

	wg.Wait()

	monitoring.TotalUsers.Set(float64(stats.TotalUsers))
	monitoring.TotalGames.Set(float64(stats.TotalGames))
	monitoring.TotalReviews.Set(float64(stats.TotalReviews))

	return stats
}
