package repository

import (
	"errors"

	"github.com/DailyMate/dailymate_backend/internal/models"

	"gorm.io/gorm"
)

// LikeRepository 日記いいねに関するデータベース操作を行うインターフェース
type LikeRepository interface {
	Create(like *models.LikeDiary) error
	Exists(userID, diaryID uint) (bool, error)
	Delete(userID, diaryID uint) error
	CountByDiaryID(diaryID uint) (int64, error)
	DeleteAllByDiaryID(diaryID uint) error
}

// likeRepository LikeRepositoryの実装
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository LikeRepositoryを作成
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create いいねを追加
func (r *likeRepository) Create(like *models.LikeDiary) error {
	return r.db.Create(like).Error
}

// Exists 複合キー（ユーザー・日記）でいいねが存在するか確認
func (r *likeRepository) Exists(userID, diaryID uint) (bool, error) {
	var like models.LikeDiary
	err := r.db.Where("user_id = ? AND diary_id = ?", userID, diaryID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete いいねを削除
func (r *likeRepository) Delete(userID, diaryID uint) error {
	return r.db.Where("user_id = ? AND diary_id = ?", userID, diaryID).
		Delete(&models.LikeDiary{}).Error
}

// CountByDiaryID 日記のいいね数を取得
func (r *likeRepository) CountByDiaryID(diaryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.LikeDiary{}).Where("diary_id = ?", diaryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAllByDiaryID 日記に付いたいいねを全て削除
func (r *likeRepository) DeleteAllByDiaryID(diaryID uint) error {
	return r.db.Where("diary_id = ?", diaryID).Delete(&models.LikeDiary{}).Error
}
