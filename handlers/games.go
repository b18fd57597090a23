package handlers

import (
	"fmt"
	"ggreviews/cache"
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/monitoring"
	"ggreviews/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetGames lists the catalog newest-first with genre resolved, with a
// Redis read-through for the hot path.
func GetGames(c *gin.Context) {
	var games []models.Game

	if cache.IsRedisAvailable() {
		if cached, err := cache.GetGames(); err == nil && cached != nil {
			utils.Log.Debug("Cache HIT: games list")
			respondGames(c, cached)
			return
		}
		utils.Log.Debug("Cache MISS: games list")
	}

	if err := db.DB.Preload("Genre").Order("created_at DESC").Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching games", "error": err.Error()})
		return
	}
	fillLikeCounts(games)

	if cache.IsRedisAvailable() {
		cache.SetGames(games)
	}

	respondGames(c, games)
}

func GetGameByID(c *gin.Context) {
	id := c.Param("id")

	if cache.IsRedisAvailable() {
		if cached, err := cache.GetGame(id); err == nil && cached != nil {
			utils.Log.Debug(fmt.Sprintf("Cache HIT: game %s", id))
			respondGame(c, http.StatusOK, *cached)
			return
		}
	}

	var game models.Game
	if err := db.DB.Preload("Genre").First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}
	game.LikeCount = countLikes(game.ID)

	if cache.IsRedisAvailable() {
		cache.SetGame(id, game)
	}

	respondGame(c, http.StatusOK, game)
}

// CreateGame adds a catalog entry. Admin gate sits on the route.
func CreateGame(c *gin.Context) {
	input := models.GameInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Genre:       c.PostForm("genre"),
		Platform:    c.PostForm("platform"),
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}
	if !models.IsValidPlatform(input.Platform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform must be one of: PC, Mobile, PC & Mobile, Consoles, Consoles + PC"})
		return
	}

	genre, err := resolveGenre(input.Genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding game", "error": err.Error()})
		return
	}

	image, err := saveImage(c)
	if err != nil {
		utils.Log.WithField("error", err.Error()).Error("Failed to save game image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	user := currentUser(c)
	game := models.Game{
		Title:       input.Title,
		Description: input.Description,
		GenreID:     genre.ID,
		Genre:       genre,
		Platform:    input.Platform,
		Image:       image,
		CreatedByID: user.ID,
	}
	if err := db.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding game", "error": err.Error()})
		return
	}

	invalidateGameCaches(game.ID)
	respondGame(c, http.StatusCreated, game)
}

// UpdateGame replaces the fields present in the form; absent fields keep
// their stored values, as does the image unless a new file is uploaded.
func UpdateGame(c *gin.Context) {
	var game models.Game
	if err := db.DB.First(&game, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		game.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		game.Description = description
	}
	if platform := c.PostForm("platform"); platform != "" {
		if !models.IsValidPlatform(platform) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Platform must be one of: PC, Mobile, PC & Mobile, Consoles, Consoles + PC"})
			return
		}
		game.Platform = platform
	}
	if genreName := c.PostForm("genre"); genreName != "" {
		genre, err := resolveGenre(genreName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating game", "error": err.Error()})
			return
		}
		game.GenreID = genre.ID
	}

	image, err := saveImage(c)
	if err != nil {
		utils.Log.WithField("error", err.Error()).Error("Failed to save game image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}
	if image != "" {
		game.Image = image
	}

	if err := db.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating game", "error": err.Error()})
		return
	}

	db.DB.Preload("Genre").First(&game, game.ID)
	game.LikeCount = countLikes(game.ID)
	invalidateGameCaches(game.ID)
	respondGame(c, http.StatusOK, game)
}

// DeleteGame removes a game. Its reviews are intentionally left in place
// and stay fetchable by id.
func DeleteGame(c *gin.Context) {
	id := c.Param("id")
	var game models.Game
	if err := db.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}
	if err := db.DB.Delete(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting game", "error": err.Error()})
		return
	}

	invalidateGameCaches(game.ID)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Game with ID %s has been deleted", id)})
}

// ToggleLike flips the acting user's membership in the game's like set.
// Insert and delete are single guarded statements, so concurrent toggles
// by different users cannot produce duplicates or lost likes.
func ToggleLike(c *gin.Context) {
	var game models.Game
	if err := db.DB.First(&game, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	user := currentUser(c)
	like := models.GameLike{GameID: game.ID, UserID: user.ID}

	res := db.DB.Where("game_id = ? AND user_id = ?", game.ID, user.ID).Delete(&models.GameLike{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error liking game", "error": res.Error.Error()})
		return
	}

	liked := false
	if res.RowsAffected == 0 {
		// Nothing removed, so this toggle is a like. The unique index plus
		// DoNothing keeps a racing duplicate insert harmless.
		err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error liking game", "error": err.Error()})
			return
		}
		liked = true
	}

	monitoring.LikeToggles.WithLabelValues(likeLabel(liked)).Inc()
	invalidateGameCaches(game.ID)

	message := "Unliked"
	if liked {
		message = "Liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"likesCount": countLikes(game.ID),
		"liked":      liked,
	})
}

func likeLabel(liked bool) string {
	if liked {
		return "like"
	}
	return "unlike"
}

// resolveGenre links a game to the genre tag with the given name, creating
// the tag on first use.
func resolveGenre(name string) (models.Genre, error) {
	var genre models.Genre
	err := db.DB.Where("name = ?", name).First(&genre).Error
	if err == nil {
		return genre, nil
	}
	if err != gorm.ErrRecordNotFound {
		return genre, err
	}
	genre = models.Genre{Name: name}
	if err := db.DB.Create(&genre).Error; err != nil {
		return genre, err
	}
	cache.InvalidateGenres()
	return genre, nil
}

func countLikes(gameID uint) int64 {
	var count int64
	db.DB.Model(&models.GameLike{}).Where("game_id = ?", gameID).Count(&count)
	return count
}

func fillLikeCounts(games []models.Game) {
	if len(games) == 0 {
		return
	}
	ids := make([]uint, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}

	var rows []struct {
		GameID uint
		Count  int64
	}
	db.DB.Model(&models.GameLike{}).
		Select("game_id, COUNT(*) as count").
		Where("game_id IN ?", ids).
		Group("game_id").
		Scan(&rows)

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.GameID] = r.Count
	}
	for i := range games {
		games[i].LikeCount = counts[games[i].ID]
	}
}

func respondGame(c *gin.Context, status int, game models.Game) {
	game.Image = absoluteImageURL(c, game.Image)
	c.JSON(status, game)
}

func respondGames(c *gin.Context, games []models.Game) {
	out := make([]models.Game, len(games))
	for i, g := range games {
		g.Image = absoluteImageURL(c, g.Image)
		out[i] = g
	}
	c.JSON(http.StatusOK, out)
}

func invalidateGameCaches(gameID uint) {
	if !cache.IsRedisAvailable() {
		return
	}
	cache.InvalidateGamesList()
	cache.InvalidateGame(fmt.Sprint(gameID))
}
