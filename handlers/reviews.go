package handlers

import (
	"ggreviews/cache"
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateReview posts a review on a game by the acting user.
func CreateReview(c *gin.Context) {
	// Mounted at /games/:id/reviews, so :id is the game here.
	gameID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	rating, _ := strconv.Atoi(c.PostForm("rating"))
	input := models.ReviewInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Rating:  rating,
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	var game models.Game
	if err := db.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	image, err := saveImage(c)
	if err != nil {
		utils.Log.WithField("error", err.Error()).Error("Failed to save review image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	user := currentUser(c)
	review := models.Review{
		GameID:  uint(gameID),
		UserID:  user.ID,
		Title:   input.Title,
		Content: input.Content,
		Rating:  input.Rating,
		Image:   image,
	}
	if err := db.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding review", "error": err.Error()})
		return
	}

	db.DB.Preload("User").First(&review, review.ID)
	invalidateReviewCache(review.GameID)
	respondReview(c, http.StatusCreated, review)
}

// GetReviewsByGame lists a game's reviews newest-first with the author
// populated.
func GetReviewsByGame(c *gin.Context) {
	gameID := c.Param("id")

	if cache.IsRedisAvailable() {
		if cached, err := cache.GetReviews(gameID); err == nil && cached != nil {
			utils.Log.Debug("Cache HIT: reviews for game " + gameID)
			respondReviews(c, cached)
			return
		}
		utils.Log.Debug("Cache MISS: reviews for game " + gameID)
	}

	var reviews []models.Review
	err := db.DB.Preload("User").
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching reviews", "error": err.Error()})
		return
	}

	if cache.IsRedisAvailable() {
		cache.SetReviews(gameID, reviews)
	}

	respondReviews(c, reviews)
}

func GetReviewByID(c *gin.Context) {
	var review models.Review
	if err := db.DB.Preload("User").First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}
	respondReview(c, http.StatusOK, review)
}

// UpdateReview partially replaces a review. Only the owner or an admin may
// touch it.
func UpdateReview(c *gin.Context) {
	var review models.Review
	if err := db.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	user := currentUser(c)
	if review.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to update this review"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		review.Title = title
	}
	if content := c.PostForm("content"); content != "" {
		review.Content = content
	}
	if ratingStr := c.PostForm("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 10"})
			return
		}
		review.Rating = rating
	}

	image, err := saveImage(c)
	if err != nil {
		utils.Log.WithField("error", err.Error()).Error("Failed to save review image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	if image != "" {
		review.Image = image
	}

	if err := db.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating review", "error": err.Error()})
		return
	}

	db.DB.Preload("User").First(&review, review.ID)
	invalidateReviewCache(review.GameID)
	respondReview(c, http.StatusOK, review)
}

// DeleteReview removes a review. Owner or admin only. Comments on the
// review are left behind, mirroring game deletion.
func DeleteReview(c *gin.Context) {
	var review models.Review
	if err := db.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	user := currentUser(c)
	if review.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to delete this review"})
		return
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting review", "error": err.Error()})
		return
	}

	invalidateReviewCache(review.GameID)
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func respondReview(c *gin.Context, status int, review models.Review) {
	review.Image = absoluteImageURL(c, review.Image)
	c.JSON(status, review)
}

func respondReviews(c *gin.Context, reviews []models.Review) {
	out := make([]models.Review, len(reviews))
	for i, r := range reviews {
		r.Image = absoluteImageURL(c, r.Image)
		out[i] = r
	}
	c.JSON(http.StatusOK, out)
}

func invalidateReviewCache(gameID uint) {
	if cache.IsRedisAvailable() {
		cache.InvalidateReviews(strconv.Itoa(int(gameID)))
	}
}
