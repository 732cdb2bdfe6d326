package services

import (
	"context"
	"log"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"
	"github.com/DailyMate/dailymate_backend/internal/repository"
	"github.com/DailyMate/dailymate_backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	MyInfo(userID uint) (*models.User, error)
	UpdateUser(userID uint, nickname, profile string) (*models.User, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	CheckPassword(userID uint, password string) (bool, error)
	Withdraw(ctx context.Context, userID uint) error
	SearchByNickname(nickname string) ([]models.User, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// MyInfo 自分の情報を取得
func (s *userService) MyInfo(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}
	return user, nil
}

// UpdateUser ニックネームとプロフィールを更新
func (s *userService) UpdateUser(userID uint, nickname, profile string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	// ニックネームを変更する場合は重複確認
	if nickname != user.Nickname {
		exists, err := s.userRepo.ExistsByNickname(nickname)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewBadRequest("既に使用されているニックネームです")
		}
	}

	user.Nickname = nickname
	user.Profile = profile

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword パスワードを変更
func (s *userService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewNotFound("存在しないユーザーです")
	}

	// 現在のパスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperrors.NewBadRequest("現在のパスワードが正しくありません")
	}

	// 新しいパスワードのポリシー確認
	if !utils.CheckPasswordPolicy(newPassword) {
		return apperrors.NewBadRequest("パスワードは8〜16字で英字・数字・特殊文字を含めてください")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	return s.userRepo.Update(user)
}

// CheckPassword パスワードが一致するか確認
func (s *userService) CheckPassword(userID uint, password string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, apperrors.NewNotFound("存在しないユーザーです")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// Withdraw 退会（ソフトデリート）してリフレッシュトークンを破棄
func (s *userService) Withdraw(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewNotFound("存在しないユーザーです")
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}

	// セッションを無効化
	if err := s.tokenRepo.Delete(ctx, user.Email); err != nil {
		// トークン削除の失敗は退会自体を妨げない
		log.Printf("[退会] リフレッシュトークンの削除に失敗しました: %v", err)
	}

	log.Printf("[退会] 退会処理が完了しました: %s", user.Email)
	return nil
}

// SearchByNickname ニックネームでユーザーを検索
func (s *userService) SearchByNickname(nickname string) ([]models.User, error) {
	if nickname == "" {
		return []models.User{}, nil
	}
	return s.userRepo.SearchByNickname(nickname)
}
