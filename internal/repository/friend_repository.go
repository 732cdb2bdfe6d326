package repository

import (
	"errors"

	"github.com/DailyMate/dailymate_backend/internal/models"

	"gorm.io/gorm"
)

// FriendRepository 友達関係に関するデータベース操作を行うインターフェース
type FriendRepository interface {
	Create(friend *models.Friend) error
	// FindRelation 2ユーザー間の関係を方向を問わず検索
	FindRelation(userID, otherID uint) (*models.Friend, error)
	// FindPendingRequest requesterID から addresseeID への承認待ち申請を検索
	FindPendingRequest(requesterID, addresseeID uint) (*models.Friend, error)
	ListFriends(userID uint) ([]models.User, error)
	ListPendingRequests(addresseeID uint) ([]models.Friend, error)
	IsFriend(userID, otherID uint) (bool, error)
	Update(friend *models.Friend) error
	Delete(id uint) error
}

// friendRepository FriendRepositoryの実装
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository FriendRepositoryを作成
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// Create 友達申請を作成
func (r *friendRepository) Create(friend *models.Friend) error {
	return r.db.Create(friend).Error
}

// FindRelation 2ユーザー間の関係を方向を問わず検索
func (r *friendRepository) FindRelation(userID, otherID uint) (*models.Friend, error) {
	var friend models.Friend
	err := r.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userID, otherID, otherID, userID,
	).First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// FindPendingRequest 承認待ちの友達申請を検索
func (r *friendRepository) FindPendingRequest(requesterID, addresseeID uint) (*models.Friend, error) {
	var friend models.Friend
	err := r.db.Where(
		"requester_id = ? AND addressee_id = ? AND status = ?",
		requesterID, addresseeID, models.FriendStatusPending,
	).First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// ListFriends 承認済みの友達一覧をユーザーとして取得
func (r *friendRepository) ListFriends(userID uint) ([]models.User, error) {
	var friends []models.Friend
	if err := r.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, models.FriendStatusAccepted,
	).Find(&friends).Error; err != nil {
		return nil, err
	}

	// 相手側のユーザーIDを集める
	var ids []uint
	for _, f := range friends {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}

	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Where("id IN ?", ids).Order("nickname ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPendingRequests 自分宛の承認待ち申請一覧を取得
func (r *friendRepository) ListPendingRequests(addresseeID uint) ([]models.Friend, error) {
	var friends []models.Friend
	if err := r.db.Where("addressee_id = ? AND status = ?", addresseeID, models.FriendStatusPending).
		Preload("Requester").
		Order("created_at DESC").
		Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// IsFriend 承認済みの友達関係が存在するか確認
func (r *friendRepository) IsFriend(userID, otherID uint) (bool, error) {
	friend, err := r.FindRelation(userID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return friend.Status == models.FriendStatusAccepted, nil
}

// Update 友達関係を更新
func (r *friendRepository) Update(friend *models.Friend) error {
	return r.db.Save(friend).Error
}

// Delete 友達関係を削除
func (r *friendRepository) Delete(id uint) error {
	return r.db.Delete(&models.Friend{}, id).Error
}
