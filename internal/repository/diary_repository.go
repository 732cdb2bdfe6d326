package repository

import (
	"github.com/DailyMate/dailymate_backend/internal/models"

	"gorm.io/gorm"
)

// DiaryRepository 日記に関するデータベース操作を行うインターフェース
type DiaryRepository interface {
	Create(diary *models.Diary) error
	// FindByID 削除済みの日記も含めて検索する。
	// サービス層が「存在しない」と「削除済み」を区別できるようにするため
	FindByID(id uint) (*models.Diary, error)
	FindByDateAndUserID(date string, userID uint) (*models.Diary, error)
	// ExistsByDateAndUserID excludeID に指定した日記自身は重複とみなさない
	ExistsByDateAndUserID(date string, userID uint, excludeID uint) (bool, error)
	FindByUserIDAndMonth(userID uint, month string) ([]models.Diary, error)
	Update(diary *models.Diary) error
	SoftDelete(id uint) error
}

// diaryRepository DiaryRepositoryの実装
type diaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository DiaryRepositoryを作成
func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

// Create 新しい日記を作成
func (r *diaryRepository) Create(diary *models.Diary) error {
	return r.db.Create(diary).Error
}

// FindByID IDで日記を検索（削除済みを含む）
func (r *diaryRepository) FindByID(id uint) (*models.Diary, error) {
	var diary models.Diary
	if err := r.db.Unscoped().First(&diary, id).Error; err != nil {
		return nil, err
	}
	return &diary, nil
}

// FindByDateAndUserID 日付とユーザーIDで未削除の日記を検索
func (r *diaryRepository) FindByDateAndUserID(date string, userID uint) (*models.Diary, error) {
	var diary models.Diary
	if err := r.db.Where("date = ? AND user_id = ?", date, userID).First(&diary).Error; err != nil {
		return nil, err
	}
	return &diary, nil
}

// ExistsByDateAndUserID 同じ日付に未削除の日記が存在するか確認
func (r *diaryRepository) ExistsByDateAndUserID(date string, userID uint, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Diary{}).Where("date = ? AND user_id = ?", date, userID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUserIDAndMonth 指定月（YYYY-MM）の未削除日記一覧を取得
func (r *diaryRepository) FindByUserIDAndMonth(userID uint, month string) ([]models.Diary, error) {
	var diaries []models.Diary
	if err := r.db.Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Order("date ASC").
		Find(&diaries).Error; err != nil {
		return nil, err
	}
	return diaries, nil
}

// Update 日記を更新
func (r *diaryRepository) Update(diary *models.Diary) error {
	return r.db.Save(diary).Error
}

// SoftDelete 日記をソフトデリート（deleted_atを設定）
func (r *diaryRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.Diary{}, id).Error
}
