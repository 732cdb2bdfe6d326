package services

import (
	"errors"
	"time"

	"github.com/DailyMate/dailymate_backend/internal/config"
	"github.com/DailyMate/dailymate_backend/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// AccessClaims アクセストークンのペイロード
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// TokenProvider JWTトークンの発行・検証を行うインターフェース
type TokenProvider interface {
	GenerateTokenPair(user *models.User) (*models.JwtToken, error)
	// ValidateToken 署名と有効期限を検証
	ValidateToken(tokenString string) bool
	// ParseAccessClaims アクセストークンからクレームを取得
	// allowExpired が true の場合、署名が正しければ期限切れでも取得できる（再発行用）
	ParseAccessClaims(tokenString string, allowExpired bool) (*AccessClaims, error)
	RefreshTokenExpiry() time.Duration
}

// tokenProvider TokenProviderの実装
type tokenProvider struct {
	config *config.Config
}

// NewTokenProvider TokenProviderを作成
func NewTokenProvider(cfg *config.Config) TokenProvider {
	return &tokenProvider{config: cfg}
}

// GenerateTokenPair アクセストークンとリフレッシュトークンのペアを生成
func (p *tokenProvider) GenerateTokenPair(user *models.User) (*models.JwtToken, error) {
	now := time.Now()

	// アクセストークン
	accessClaims := &AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.Email,
			ExpiresAt: now.Add(p.config.Auth.AccessTokenExpiry).Unix(),
			IssuedAt:  now.Unix(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(p.config.Auth.JWTSecret))
	if err != nil {
		return nil, err
	}

	// リフレッシュトークン（識別情報は持たせない）
	refreshClaims := &jwt.StandardClaims{
		ExpiresAt: now.Add(p.config.Auth.RefreshTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(p.config.Auth.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &models.JwtToken{
		GrantType:    "Bearer",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken 署名と有効期限を検証
func (p *tokenProvider) ValidateToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, p.keyFunc)
	if err != nil {
		return false
	}
	return token.Valid
}

// ParseAccessClaims アクセストークンからクレームを取得
func (p *tokenProvider) ParseAccessClaims(tokenString string, allowExpired bool) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, p.keyFunc)
	if err != nil {
		// 期限切れのみのエラーであれば署名自体は正しい
		var ve *jwt.ValidationError
		if allowExpired && errors.As(err, &ve) && ve.Errors&^jwt.ValidationErrorExpired == 0 {
			return claims, nil
		}
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("無効なトークンです")
	}

	return claims, nil
}

// RefreshTokenExpiry リフレッシュトークンの有効期間
func (p *tokenProvider) RefreshTokenExpiry() time.Duration {
	return p.config.Auth.RefreshTokenExpiry
}

// keyFunc 署名方法を確認して秘密鍵を返す
func (p *tokenProvider) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(p.config.Auth.JWTSecret), nil
}
