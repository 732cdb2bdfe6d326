package controllers

import (
	"net/http"

	"github.com/DailyMate/dailymate_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// FriendController 友達関係に関するコントローラー
type FriendController struct {
	friendService services.FriendService
}

// NewFriendController FriendControllerを作成
func NewFriendController(friendService services.FriendService) *FriendController {
	return &FriendController{
		friendService: friendService,
	}
}

// ListFriends 友達一覧を取得
func (c *FriendController) ListFriends(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	friends, err := c.friendService.ListFriends(user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListRequests 自分宛の承認待ち申請一覧を取得
func (c *FriendController) ListRequests(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	requests, err := c.friendService.ListRequests(user.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SendRequest 友達申請を送る
func (c *FriendController) SendRequest(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	targetID, err := parseID(ctx)
	if err != nil {
		return
	}

	message, err := c.friendService.SendRequest(user.ID, targetID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": message})
}

// AcceptRequest 友達申請を承認する
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	requesterID, err := parseID(ctx)
	if err != nil {
		return
	}

	message, err := c.friendService.AcceptRequest(user.ID, requesterID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// DenyRequest 友達申請を拒否する
func (c *FriendController) DenyRequest(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	requesterID, err := parseID(ctx)
	if err != nil {
		return
	}

	message, err := c.friendService.DenyRequest(user.ID, requesterID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteFriend 友達関係を解消する
func (c *FriendController) DeleteFriend(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	friendID, err := parseID(ctx)
	if err != nil {
		return
	}

	message, err := c.friendService.DeleteFriend(user.ID, friendID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}
