package handlers

import (
	"ggreviews/cache"
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetGenres lists the genre tags, cached since the set changes rarely.
func GetGenres(c *gin.Context) {
	if cache.IsRedisAvailable() {
		if cached, err := cache.GetGenres(); err == nil && cached != nil {
			utils.Log.Debug("Cache HIT: genres")
			c.JSON(http.StatusOK, cached)
			return
		}
		utils.Log.Debug("Cache MISS: genres")
	}

	var genres []models.Genre
	if err := db.DB.Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
		return
	}

	if cache.IsRedisAvailable() {
		cache.SetGenres(genres)
	}

	c.JSON(http.StatusOK, genres)
}

// CreateGenre adds a genre tag. Admin gate sits on the route.
func CreateGenre(c *gin.Context) {
	var genre models.Genre
	if err := c.ShouldBindJSON(&genre); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(genre); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	var existing models.Genre
	if err := db.DB.Where("name = ?", genre.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Genre already exists"})
		return
	}

	if err := db.DB.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create genre"})
		return
	}

	cache.InvalidateGenres()
	c.JSON(http.StatusCreated, genre)
}

// DeleteGenre removes a genre tag. Games that referenced it keep their
// dangling genre id, same as reviews orphaned by game deletion.
func DeleteGenre(c *gin.Context) {
	var genre models.Genre
	if err := db.DB.First(&genre, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
		return
	}
	if err := db.DB.Delete(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete genre"})
		return
	}

	cache.InvalidateGenres()
	c.JSON(http.StatusOK, gin.H{"message": "Genre deleted successfully"})
}
