package services

import (
	"errors"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"
	"github.com/DailyMate/dailymate_backend/internal/repository"

	"gorm.io/gorm"
)

// FriendService 友達関係に関するサービスインターフェース
// 各操作はユーザー向けメッセージを返す
type FriendService interface {
	ListFriends(userID uint) ([]models.User, error)
	ListRequests(userID uint) ([]models.Friend, error)
	SendRequest(userID, targetID uint) (string, error)
	AcceptRequest(userID, requesterID uint) (string, error)
	DenyRequest(userID, requesterID uint) (string, error)
	DeleteFriend(userID, friendID uint) (string, error)
}

// friendService FriendServiceの実装
type friendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService FriendServiceを作成
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) FriendService {
	return &friendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// ListFriends 承認済みの友達一覧を取得
func (s *friendService) ListFriends(userID uint) ([]models.User, error) {
	return s.friendRepo.ListFriends(userID)
}

// ListRequests 自分宛の承認待ち申請一覧を取得
func (s *friendService) ListRequests(userID uint) ([]models.Friend, error) {
	return s.friendRepo.ListPendingRequests(userID)
}

// SendRequest 友達申請を送る
func (s *friendService) SendRequest(userID, targetID uint) (string, error) {
	if userID == targetID {
		return "", apperrors.NewBadRequest("自分自身には友達申請できません")
	}

	// 相手の存在確認
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return "", apperrors.NewNotFound("存在しないユーザーです")
	}

	// 既存の関係を確認（方向は問わない）
	_, err := s.friendRepo.FindRelation(userID, targetID)
	if err == nil {
		return "", apperrors.NewBadRequest("既に友達関係または申請が存在します")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	friend := &models.Friend{
		RequesterID: userID,
		AddresseeID: targetID,
		Status:      models.FriendStatusPending,
	}

	if err := s.friendRepo.Create(friend); err != nil {
		return "", err
	}

	return "友達申請を送りました", nil
}

// AcceptRequest 自分宛の友達申請を承認する
func (s *friendService) AcceptRequest(userID, requesterID uint) (string, error) {
	friend, err := s.friendRepo.FindPendingRequest(requesterID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NewNotFound("友達申請が見つかりません")
		}
		return "", err
	}

	friend.Status = models.FriendStatusAccepted
	if err := s.friendRepo.Update(friend); err != nil {
		return "", err
	}

	return "友達申請を承認しました", nil
}

// DenyRequest 自分宛の友達申請を拒否する
func (s *friendService) DenyRequest(userID, requesterID uint) (string, error) {
	friend, err := s.friendRepo.FindPendingRequest(requesterID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NewNotFound("友達申請が見つかりません")
		}
		return "", err
	}

	if err := s.friendRepo.Delete(friend.ID); err != nil {
		return "", err
	}

	return "友達申請を拒否しました", nil
}

// DeleteFriend 友達関係を解消する
func (s *friendService) DeleteFriend(userID, friendID uint) (string, error) {
	friend, err := s.friendRepo.FindRelation(userID, friendID)
	if err != nil || friend.Status != models.FriendStatusAccepted {
		return "", apperrors.NewNotFound("友達関係が見つかりません")
	}

	if err := s.friendRepo.Delete(friend.ID); err != nil {
		return "", err
	}

	return "友達を削除しました", nil
}
