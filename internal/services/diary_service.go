package services

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"
	"github.com/DailyMate/dailymate_backend/internal/repository"

	"gorm.io/gorm"
)

// DiaryService 日記に関するサービスインターフェース
type DiaryService interface {
	AddDiary(userID uint, date, title, content, weather, feeling, openType string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Diary, error)
	UpdateDiary(diaryID, userID uint, date, title, content, weather, feeling, openType string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Diary, error)
	DeleteDiary(diaryID, userID uint) error
	// ToggleLike いいねのトグル。トグル後のいいね状態といいね数を返す
	ToggleLike(diaryID, userID uint) (bool, int64, error)
	FindDiary(date string, userID uint) (*models.Diary, error)
	FindFriendDiary(diaryID, userID uint) (*models.Diary, error)
	// FindDiaryByMonth 日付（日）をキーにした疎なマップを返す。日記のない日はキー自体が存在しない
	FindDiaryByMonth(month string, userID uint) (map[int]models.DiaryMonthly, error)
}

// diaryService DiaryServiceの実装
type diaryService struct {
	diaryRepo    repository.DiaryRepository
	likeRepo     repository.LikeRepository
	userRepo     repository.UserRepository
	friendRepo   repository.FriendRepository
	imageService ImageService
}

// NewDiaryService DiaryServiceを作成
func NewDiaryService(
	diaryRepo repository.DiaryRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	imageService ImageService) DiaryService {

	return &diaryService{
		diaryRepo:    diaryRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		friendRepo:   friendRepo,
		imageService: imageService,
	}
}

// AddDiary 日記を作成
func (s *diaryService) AddDiary(userID uint, date, title, content, weather, feeling, openType string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Diary, error) {
	// 入力値を検証
	w, f, o, err := s.validateInput(date, title, weather, feeling, openType)
	if err != nil {
		return nil, err
	}

	// ユーザーの存在確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	// 同じ日付に未削除の日記が存在しないか確認
	exists, err := s.diaryRepo.ExistsByDateAndUserID(date, userID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequest("その日付の日記は既に存在します")
	}

	diary := &models.Diary{
		UserID:   userID,
		Date:     date,
		Title:    title,
		Content:  content,
		Weather:  w,
		Feeling:  f,
		OpenType: o,
	}

	// 画像があればアップロード
	if image != nil && imageHeader != nil {
		imageURL, err := s.imageService.Upload(image, imageHeader)
		if err != nil {
			return nil, err
		}
		diary.Image = imageURL
	}

	if err := s.diaryRepo.Create(diary); err != nil {
		return nil, err
	}

	return diary, nil
}

// UpdateDiary 日記を修正
func (s *diaryService) UpdateDiary(diaryID, userID uint, date, title, content, weather, feeling, openType string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Diary, error) {
	// 日記の存在確認
	diary, err := s.findActiveDiary(diaryID)
	if err != nil {
		return nil, err
	}

	// 作成者の確認
	if diary.UserID != userID {
		return nil, apperrors.NewForbidden("日記を修正する権限がありません")
	}

	// 入力値を検証
	w, f, o, err := s.validateInput(date, title, weather, feeling, openType)
	if err != nil {
		return nil, err
	}

	// 修正先の日付に別の日記が存在しないか確認（自分自身は除く）
	exists, err := s.diaryRepo.ExistsByDateAndUserID(date, userID, diary.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequest("その日付の日記は既に存在します")
	}

	diary.Date = date
	diary.Title = title
	diary.Content = content
	diary.Weather = w
	diary.Feeling = f
	diary.OpenType = o

	// 画像を差し替える場合は先に既存の画像を削除
	if image != nil && imageHeader != nil {
		if diary.Image != "" {
			if err := s.imageService.Delete(diary.Image); err != nil {
				return nil, err
			}
		}

		imageURL, err := s.imageService.Upload(image, imageHeader)
		if err != nil {
			return nil, err
		}
		diary.Image = imageURL
	}

	if err := s.diaryRepo.Update(diary); err != nil {
		return nil, err
	}

	return diary, nil
}

// DeleteDiary 日記をソフトデリート
func (s *diaryService) DeleteDiary(diaryID, userID uint) error {
	// 日記の存在確認
	diary, err := s.findActiveDiary(diaryID)
	if err != nil {
		return err
	}

	// 作成者の確認
	if diary.UserID != userID {
		return apperrors.NewForbidden("日記を削除する権限がありません")
	}

	// 画像が存在すれば削除
	if diary.Image != "" {
		if err := s.imageService.Delete(diary.Image); err != nil {
			return err
		}
	}

	// いいねを全て削除
	if err := s.likeRepo.DeleteAllByDiaryID(diary.ID); err != nil {
		return err
	}

	// deleted_at を設定
	return s.diaryRepo.SoftDelete(diary.ID)
}

// ToggleLike いいねのトグル
// 存在確認と作成の間にアトミック性はない。二重トグルの競合は複合主キーが
// 重複挿入を弾くため、状態が壊れることはない
func (s *diaryService) ToggleLike(diaryID, userID uint) (bool, int64, error) {
	// 日記の存在確認
	diary, err := s.findActiveDiary(diaryID)
	if err != nil {
		return false, 0, err
	}

	// ユーザーの存在確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return false, 0, apperrors.NewNotFound("存在しないユーザーです")
	}

	// 閲覧できない日記にはいいねできない
	visible, err := s.canView(diary, userID)
	if err != nil {
		return false, 0, err
	}
	if !visible {
		return false, 0, apperrors.NewForbidden("この日記を閲覧する権限がありません")
	}

	// トグル
	liked, err := s.likeRepo.Exists(userID, diaryID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.likeRepo.Delete(userID, diaryID); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.likeRepo.Create(&models.LikeDiary{UserID: userID, DiaryID: diaryID}); err != nil {
			return false, 0, err
		}
	}

	count, err := s.likeRepo.CountByDiaryID(diaryID)
	if err != nil {
		return false, 0, err
	}

	return !liked, count, nil
}

// FindDiary 日付で自分の日記を取得。日記がない日は nil を返す
func (s *diaryService) FindDiary(date string, userID uint) (*models.Diary, error) {
	// ユーザーの存在確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	diary, err := s.diaryRepo.FindByDateAndUserID(date, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.attachLikeInfo(diary, userID); err != nil {
		return nil, err
	}

	return diary, nil
}

// FindFriendDiary IDで他ユーザーの日記を取得（公開範囲を確認する）
func (s *diaryService) FindFriendDiary(diaryID, userID uint) (*models.Diary, error) {
	// ユーザーの存在確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	// 日記の存在確認
	diary, err := s.findActiveDiary(diaryID)
	if err != nil {
		return nil, err
	}

	// 閲覧資格の確認
	visible, err := s.canView(diary, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewForbidden("この日記を閲覧する権限がありません")
	}

	if err := s.attachLikeInfo(diary, userID); err != nil {
		return nil, err
	}

	return diary, nil
}

// FindDiaryByMonth 月別の日記一覧を日付（日）をキーにしたマップで取得
func (s *diaryService) FindDiaryByMonth(month string, userID uint) (map[int]models.DiaryMonthly, error) {
	// 入力値検証（YYYY-MM）
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, apperrors.NewBadRequest("日付の形式が正しくありません")
	}

	// ユーザーの存在確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	diaries, err := s.diaryRepo.FindByUserIDAndMonth(userID, month)
	if err != nil {
		return nil, err
	}

	monthly := make(map[int]models.DiaryMonthly, len(diaries))
	for _, diary := range diaries {
		day, err := strconv.Atoi(diary.Date[8:10])
		if err != nil {
			continue
		}
		monthly[day] = models.DiaryMonthly{
			ID:      diary.ID,
			Date:    diary.Date,
			Title:   diary.Title,
			Feeling: diary.Feeling,
			Image:   diary.Image,
		}
	}

	return monthly, nil
}

// findActiveDiary IDで日記を取得し、存在しない・削除済みを区別してエラーを返す
func (s *diaryService) findActiveDiary(diaryID uint) (*models.Diary, error) {
	diary, err := s.diaryRepo.FindByID(diaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("日記が見つかりません")
		}
		return nil, err
	}

	if diary.DeletedAt.Valid {
		return nil, apperrors.NewNotFound("既に削除された日記です")
	}

	return diary, nil
}

// canView 公開範囲に基づく閲覧資格の判定
// 本人は常に閲覧可。public は誰でも、friend は承認済みの友達のみ、private は本人のみ
func (s *diaryService) canView(diary *models.Diary, viewerID uint) (bool, error) {
	if diary.UserID == viewerID {
		return true, nil
	}

	switch diary.OpenType {
	case models.OpenTypePublic:
		return true, nil
	case models.OpenTypeFriend:
		return s.friendRepo.IsFriend(diary.UserID, viewerID)
	default:
		return false, nil
	}
}

// attachLikeInfo いいね数と自分がいいね済みかをレスポンス用に設定
func (s *diaryService) attachLikeInfo(diary *models.Diary, viewerID uint) error {
	count, err := s.likeRepo.CountByDiaryID(diary.ID)
	if err != nil {
		return err
	}

	liked, err := s.likeRepo.Exists(viewerID, diary.ID)
	if err != nil {
		return err
	}

	diary.LikeCount = count
	diary.IsLiked = liked
	return nil
}

// validateInput 日記の入力値を検証して各列挙型に変換
func (s *diaryService) validateInput(date, title, weather, feeling, openType string) (models.Weather, models.Feeling, models.OpenType, error) {
	if strings.TrimSpace(title) == "" {
		return "", "", "", apperrors.NewBadRequest("日記のタイトルを入力してください")
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", "", apperrors.NewBadRequest("日付の形式が正しくありません")
	}

	w := models.Weather(weather)
	if !w.IsValid() {
		return "", "", "", apperrors.NewBadRequest("天気の値が正しくありません")
	}

	f := models.Feeling(feeling)
	if !f.IsValid() {
		return "", "", "", apperrors.NewBadRequest("気分の値が正しくありません")
	}

	o := models.OpenType(openType)
	if !o.IsValid() {
		return "", "", "", apperrors.NewBadRequest("公開範囲の値が正しくありません")
	}

	return w, f, o, nil
}
