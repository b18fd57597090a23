package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"ggreviews/models"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes the Redis connection. The service runs without it;
// every caller checks IsRedisAvailable first.
func InitRedis() error {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// Cache keys
const (
	GamesCacheKey      = "games:all"
	GameCachePrefix    = "game:"         // game:123
	GenresCacheKey     = "genres:all"
	ReviewsCachePrefix = "reviews:game:" // reviews:game:123
)

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value from cache into dest
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes a key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// ==================== GAME CACHING ====================

// GetGames returns the cached games list
func GetGames() ([]models.Game, error) {
	var games []models.Game
	if err := Get(GamesCacheKey, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SetGames caches the games list for 5 minutes
func SetGames(games []models.Game) error {
	return Set(GamesCacheKey, games, 5*time.Minute)
}

// GetGame returns a cached game
func GetGame(id string) (*models.Game, error) {
	var game models.Game
	if err := Get(GameCachePrefix+id, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// SetGame caches one game for 1 hour
func SetGame(id string, game models.Game) error {
	return Set(GameCachePrefix+id, game, time.Hour)
}

// InvalidateGame removes one game from cache
func InvalidateGame(id string) error {
	return Delete(GameCachePrefix + id)
}

// InvalidateGamesList drops the games list cache
func InvalidateGamesList() error {
	return Delete(GamesCacheKey)
}

// ==================== GENRE CACHING ====================

// GetGenres returns the cached genre tags
func GetGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := Get(GenresCacheKey, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// SetGenres caches the genre tags for 1 hour
func SetGenres(genres []models.Genre) error {
	return Set(GenresCacheKey, genres, time.Hour)
}

// InvalidateGenres removes the genre cache
func InvalidateGenres() error {
	return Delete(GenresCacheKey)
}

// ==================== REVIEW CACHING ====================

// GetReviews returns cached reviews for a game
func GetReviews(gameID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := Get(ReviewsCachePrefix+gameID, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetReviews caches a game's reviews for 10 minutes
func SetReviews(gameID string, reviews []models.Review) error {
	return Set(ReviewsCachePrefix+gameID, reviews, 10*time.Minute)
}

// InvalidateReviews removes the reviews cache for a game
func InvalidateReviews(gameID string) error {
	return Delete(ReviewsCachePrefix + gameID)
}
