package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/DailyMate/dailymate_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DiaryController 日記に関するコントローラー
type DiaryController struct {
	diaryService services.DiaryService
}

// NewDiaryController DiaryControllerを作成
func NewDiaryController(diaryService services.DiaryService) *DiaryController {
	return &DiaryController{
		diaryService: diaryService,
	}
}

// diaryForm マルチパートフォームから日記の入力値を取り出す
func diaryForm(ctx *gin.Context) (date, title, content, weather, feeling, openType string, image multipart.File, imageHeader *multipart.FileHeader) {
	date = ctx.PostForm("date")
	title = ctx.PostForm("title")
	content = ctx.PostForm("content")
	weather = ctx.PostForm("weather")
	feeling = ctx.PostForm("feeling")
	openType = ctx.DefaultPostForm("open_type", "private")

	// 画像は任意
	file, header, err := ctx.Request.FormFile("image")
	if err == nil {
		image = file
		imageHeader = header
	}
	return
}

// Create 日記を作成
func (c *DiaryController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	// マルチパートフォームを解析
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "マルチパートフォームの解析に失敗しました"})
		return
	}

	date, title, content, weather, feeling, openType, image, imageHeader := diaryForm(ctx)
	if image != nil {
		defer image.Close()
	}

	diary, err := c.diaryService.AddDiary(user.ID, date, title, content, weather, feeling, openType, image, imageHeader)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"diary": diary})
}

// Update 日記を修正
func (c *DiaryController) Update(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	diaryID, err := parseID(ctx)
	if err != nil {
		return
	}

	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "マルチパートフォームの解析に失敗しました"})
		return
	}

	date, title, content, weather, feeling, openType, image, imageHeader := diaryForm(ctx)
	if image != nil {
		defer image.Close()
	}

	diary, err := c.diaryService.UpdateDiary(diaryID, user.ID, date, title, content, weather, feeling, openType, image, imageHeader)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"diary": diary})
}

// Delete 日記を削除
func (c *DiaryController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	diaryID, err := parseID(ctx)
	if err != nil {
		return
	}

	if err := c.diaryService.DeleteDiary(diaryID, user.ID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "日記を削除しました"})
}

// ToggleLike いいねのトグル
func (c *DiaryController) ToggleLike(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	diaryID, err := parseID(ctx)
	if err != nil {
		return
	}

	liked, count, err := c.diaryService.ToggleLike(diaryID, user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"is_liked": liked, "like_count": count})
}

// GetByDate 日付で自分の日記を取得
func (c *DiaryController) GetByDate(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "日付を指定してください"})
		return
	}

	diary, err := c.diaryService.FindDiary(date, user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	// 日記のない日は null を返す
	ctx.JSON(http.StatusOK, gin.H{"diary": diary})
}

// GetByMonth 月別の日記一覧を取得
func (c *DiaryController) GetByMonth(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	month := ctx.Query("date")
	if month == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "日付を指定してください"})
		return
	}

	monthly, err := c.diaryService.FindDiaryByMonth(month, user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"diaries": monthly})
}

// GetFriendDiary IDで友達の日記を取得
func (c *DiaryController) GetFriendDiary(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	diaryID, err := parseID(ctx)
	if err != nil {
		return
	}

	diary, err := c.diaryService.FindFriendDiary(diaryID, user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"diary": diary})
}

// parseID パスパラメータのIDを解析
func parseID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return 0, err
	}
	return uint(id), nil
}
