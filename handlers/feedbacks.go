package handlers

import (
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateFeedback records site feedback from the acting user.
func CreateFeedback(c *gin.Context) {
	var input models.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message and rating are required"})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := currentUser(c)
	feedback := models.Feedback{
		UserID:  user.ID,
		Message: input.Message,
		Rating:  input.Rating,
	}
	if err := db.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feedback"})
		return
	}

	db.DB.Preload("User").First(&feedback, feedback.ID)
	c.JSON(http.StatusCreated, feedback)
}

// GetFeedbacks lists all feedback newest-first with the author populated.
func GetFeedbacks(c *gin.Context) {
	var feedbacks []models.Feedback
	err := db.DB.Preload("User").Order("created_at DESC").Find(&feedbacks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedbacks"})
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}

// DeleteFeedback removes a feedback entry. Owner or admin only.
func DeleteFeedback(c *gin.Context) {
	var feedback models.Feedback
	if err := db.DB.First(&feedback, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	user := currentUser(c)
	if feedback.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this feedback"})
		return
	}

	if err := db.DB.Delete(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
