package controllers

import (
	"net/http"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// handleServiceError サービス層のエラーをHTTPステータスへ変換
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsBadRequest(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsForbidden(err):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsToken(err):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
	}
}

// currentUser コンテキストから認証済みユーザーを取得
func currentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return nil, false
	}
	return value.(*models.User), true
}
