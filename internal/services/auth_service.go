package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"
	"github.com/DailyMate/dailymate_backend/internal/repository"
	"github.com/DailyMate/dailymate_backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	SignUp(email, password, nickname string) error
	CheckEmail(email string) (bool, error)
	CheckNickname(nickname string) (bool, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Reissue(ctx context.Context, accessToken, refreshToken string) (*models.JwtToken, error)
	Logout(ctx context.Context, email string) error
	GetUserFromToken(tokenString string) (*models.User, error)
}

// LoginResult ログインレスポンス
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	Image        string `json:"image"`
	Profile      string `json:"profile"`
	Role         string `json:"role"`
}

// authService AuthServiceの実装
type authService struct {
	userRepo      repository.UserRepository
	tokenRepo     repository.TokenRepository
	tokenProvider TokenProvider
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokenProvider TokenProvider) AuthService {
	return &authService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		tokenProvider: tokenProvider,
	}
}

// SignUp 会員登録
func (s *authService) SignUp(email, password, nickname string) error {
	// 入力値の確認
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(nickname) == "" {
		return apperrors.NewBadRequest("会員情報をすべて入力してください")
	}

	// メールアドレスの重複確認
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewBadRequest("既に使用されているメールアドレスです")
	}

	// ニックネームの重複確認
	exists, err = s.userRepo.ExistsByNickname(nickname)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewBadRequest("既に使用されているニックネームです")
	}

	// パスワードポリシーの確認
	if !utils.CheckPasswordPolicy(password) {
		return apperrors.NewBadRequest("パスワードは8〜16字で英字・数字・特殊文字を含めてください")
	}

	// パスワードをハッシュ化
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Nickname: nickname,
		Role:     "user",
	}

	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	log.Printf("[会員登録] 登録が完了しました: %s", email)
	return nil
}

// CheckEmail メールアドレスが使用済みか確認
func (s *authService) CheckEmail(email string) (bool, error) {
	return s.userRepo.ExistsByEmail(email)
}

// CheckNickname ニックネームが使用済みか確認
func (s *authService) CheckNickname(nickname string) (bool, error) {
	return s.userRepo.ExistsByNickname(nickname)
}

// Login ログインしてトークンペアを発行
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	// ユーザーを検索
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.NewBadRequest("メールアドレスまたはパスワードが正しくありません")
	}

	// トークンペアを生成
	token, err := s.tokenProvider.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	// リフレッシュトークンをストアに保存（メールアドレスをキーに上書き）
	if err := s.tokenRepo.Save(ctx, user.Email, token.RefreshToken, s.tokenProvider.RefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Email:        user.Email,
		Nickname:     user.Nickname,
		Image:        user.Image,
		Profile:      user.Profile,
		Role:         user.Role,
	}, nil
}

// Reissue リフレッシュトークンを検証してトークンペアを再発行
func (s *authService) Reissue(ctx context.Context, accessToken, refreshToken string) (*models.JwtToken, error) {
	// リフレッシュトークンを検証
	if !s.tokenProvider.ValidateToken(refreshToken) {
		return nil, apperrors.NewToken("リフレッシュトークンが有効ではありません")
	}

	// アクセストークンから識別情報を取得（期限切れは許容する）
	claims, err := s.tokenProvider.ParseAccessClaims(accessToken, true)
	if err != nil {
		return nil, apperrors.NewToken("アクセストークンが有効ではありません")
	}

	// ストアからリフレッシュトークンを取得
	stored, err := s.tokenRepo.Find(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, apperrors.NewNotFound("ログアウトしたユーザーです")
		}
		return nil, err
	}

	// 一致するか確認
	if stored != refreshToken {
		return nil, apperrors.NewToken("トークンが一致しないため再発行できません")
	}

	// ユーザーを取得して再発行
	user, err := s.userRepo.FindByEmail(claims.Email)
	if err != nil {
		return nil, apperrors.NewNotFound("存在しないユーザーです")
	}

	token, err := s.tokenProvider.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	// ストアのトークンを上書き
	if err := s.tokenRepo.Save(ctx, user.Email, token.RefreshToken, s.tokenProvider.RefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return token, nil
}

// Logout ストアのリフレッシュトークンを破棄
func (s *authService) Logout(ctx context.Context, email string) error {
	return s.tokenRepo.Delete(ctx, email)
}

// GetUserFromToken アクセストークンからユーザーを取得
func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.tokenProvider.ParseAccessClaims(tokenString, false)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
