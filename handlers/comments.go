package handlers

import (
	"ggreviews/db"
	"ggreviews/models"
	"ggreviews/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddComment creates a comment on a review and bumps the review's cached
// comment count. Both writes run in one transaction so the counter cannot
// drift from the rows it summarizes.
func AddComment(c *gin.Context) {
	// Mounted at /comments/:id for creation, where :id is the review.
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	input := models.CommentInput{Content: c.PostForm("content")}
	if input.Content == "" {
		// JSON bodies are accepted too; the original client posts multipart.
		var body models.CommentInput
		if err := c.ShouldBindJSON(&body); err == nil {
			input = body
		}
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	var review models.Review
	if err := db.DB.First(&review, reviewID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	image, err := saveImage(c)
	if err != nil {
		utils.Log.WithField("error", err.Error()).Error("Failed to save comment image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	user := currentUser(c)
	comment := models.Comment{
		ReviewID: uint(reviewID),
		UserID:   user.ID,
		Content:  input.Content,
		Image:    image,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding comment", "error": err.Error()})
		return
	}

	db.DB.Preload("User").First(&comment, comment.ID)
	invalidateReviewCache(review.GameID)
	respondComment(c, http.StatusCreated, comment)
}

// GetCommentsByReview lists a review's comments newest-first with authors
// populated.
func GetCommentsByReview(c *gin.Context) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("review_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching comments", "error": err.Error()})
		return
	}

	out := make([]models.Comment, len(comments))
	for i, cm := range comments {
		cm.Image = absoluteImageURL(c, cm.Image)
		out[i] = cm
	}
	c.JSON(http.StatusOK, out)
}

func GetCommentByID(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.Preload("User").First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	respondComment(c, http.StatusOK, comment)
}

// UpdateComment edits a comment's content. Owner or admin; the admin
// override matches the delete rule.
func UpdateComment(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	user := currentUser(c)
	if comment.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to update this comment"})
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	comment.Content = input.Content
	if err := db.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating comment", "error": err.Error()})
		return
	}

	db.DB.Preload("User").First(&comment, comment.ID)
	respondComment(c, http.StatusOK, comment)
}

// DeleteComment removes a comment and drops the review's cached count,
// floored at zero, in the same transaction.
func DeleteComment(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	user := currentUser(c)
	if comment.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to delete this comment"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		// The guard in the WHERE clause is the floor at zero.
		return tx.Model(&models.Review{}).
			Where("id = ? AND comment_count > 0", comment.ReviewID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting comment", "error": err.Error()})
		return
	}

	var review models.Review
	if err := db.DB.First(&review, comment.ReviewID).Error; err == nil {
		invalidateReviewCache(review.GameID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func respondComment(c *gin.Context, status int, comment models.Comment) {
	comment.Image = absoluteImageURL(c, comment.Image)
	c.JSON(status, comment)
}
