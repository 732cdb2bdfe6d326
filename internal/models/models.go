package models

import (
	"time"

	"gorm.io/gorm"
)

// Weather 日記の天気
type Weather string

// Feeling 日記の気分
type Feeling string

// OpenType 日記の公開範囲
type OpenType string

const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
	WeatherSnowy  Weather = "snowy"

	FeelingHappy Feeling = "happy"
	FeelingSoso  Feeling = "soso"
	FeelingSad   Feeling = "sad"
	FeelingAngry Feeling = "angry"
	FeelingTired Feeling = "tired"

	// OpenTypePublic は全体公開、OpenTypeFriend は友達まで、OpenTypePrivate は本人のみ
	OpenTypePublic  OpenType = "public"
	OpenTypeFriend  OpenType = "friend"
	OpenTypePrivate OpenType = "private"
)

// IsValid 天気の値が定義済みか確認
func (w Weather) IsValid() bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy, WeatherSnowy:
		return true
	}
	return false
}

// IsValid 気分の値が定義済みか確認
func (f Feeling) IsValid() bool {
	switch f {
	case FeelingHappy, FeelingSoso, FeelingSad, FeelingAngry, FeelingTired:
		return true
	}
	return false
}

// IsValid 公開範囲の値が定義済みか確認
func (o OpenType) IsValid() bool {
	switch o {
	case OpenTypePublic, OpenTypeFriend, OpenTypePrivate:
		return true
	}
	return false
}

// User ユーザーモデル
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Nickname  string         `json:"nickname" gorm:"uniqueIndex;not null"`
	Profile   string         `json:"profile"`
	Image     string         `json:"image"`
	Role      string         `json:"role" gorm:"default:user"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// リレーション
	Diaries []Diary     `json:"-"`
	Likes   []LikeDiary `json:"-"`
}

// Diary 日記モデル
// 同一ユーザー・同一日付の未削除日記は1件まで
type Diary struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Date      string         `json:"date" gorm:"type:varchar(10);not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text"`
	Weather   Weather        `json:"weather" gorm:"type:varchar(10)"`
	Feeling   Feeling        `json:"feeling" gorm:"type:varchar(10)"`
	OpenType  OpenType       `json:"open_type" gorm:"type:varchar(10);default:private"`
	Image     string         `json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// リレーション
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes []LikeDiary `json:"-"`

	// カウント (JSONレスポンス用)
	LikeCount int64 `json:"like_count" gorm:"-"`
	IsLiked   bool  `json:"is_liked" gorm:"-"`
}

// LikeDiary 日記いいねモデル（複合主キー）
type LikeDiary struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	DiaryID   uint      `json:"diary_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	User  User  `json:"-"`
	Diary Diary `json:"-"`
}

// FriendStatus 友達関係のステータス
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// Friend 友達関係モデル
// RequesterID が申請した側、AddresseeID が受け取った側
type Friend struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	RequesterID uint         `json:"requester_id" gorm:"not null;uniqueIndex:idx_friend_pair"`
	AddresseeID uint         `json:"addressee_id" gorm:"not null;uniqueIndex:idx_friend_pair"`
	Status      FriendStatus `json:"status" gorm:"type:varchar(10);default:pending"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// リレーション
	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Addressee *User `json:"addressee,omitempty" gorm:"foreignKey:AddresseeID"`
}

// DiaryMonthly 月別カレンダー用の軽量レスポンス
type DiaryMonthly struct {
	ID      uint    `json:"id"`
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Feeling Feeling `json:"feeling"`
	Image   string  `json:"image"`
}

// JwtToken アクセストークンとリフレッシュトークンのペア
type JwtToken struct {
	GrantType    string `json:"grant_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
