package controllers

import (
	"net/http"

	"github.com/DailyMate/dailymate_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService services.UserService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// UpdateUserRequest 会員情報修正リクエスト
type UpdateUserRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Profile  string `json:"profile"`
}

// UpdatePasswordRequest パスワード変更リクエスト
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// PasswordCheckRequest パスワード確認リクエスト
type PasswordCheckRequest struct {
	Password string `json:"password" binding:"required"`
}

// GetMe 自分の情報を取得
func (c *UserController) GetMe(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	info, err := c.userService.MyInfo(user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// UpdateMe 会員情報を修正
func (c *UserController) UpdateMe(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.userService.UpdateUser(user.ID, req.Nickname, req.Profile)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// UpdatePassword パスワードを変更
func (c *UserController) UpdatePassword(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.userService.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "パスワードが正常に変更されました"})
}

// CheckPassword パスワードが一致するか確認
func (c *UserController) CheckPassword(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req PasswordCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := c.userService.CheckPassword(user.ID, req.Password)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"match": match})
}

// Withdraw 退会
func (c *UserController) Withdraw(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.userService.Withdraw(ctx.Request.Context(), user.ID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "退会処理が完了しました"})
}

// Search ニックネームでユーザーを検索
func (c *UserController) Search(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		return
	}

	users, err := c.userService.SearchByNickname(ctx.Query("nickname"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}
