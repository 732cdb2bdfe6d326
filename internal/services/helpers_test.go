package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/DailyMate/dailymate_backend/internal/config"
	"github.com/DailyMate/dailymate_backend/internal/models"
	"github.com/DailyMate/dailymate_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB テスト用のインメモリSQLiteデータベースを作成
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("テスト用DBの作成に失敗しました: %v", err)
	}

	// インメモリDBは接続ごとに別のDBになるため接続数を1に固定する
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("SQLDBインスタンスの取得に失敗しました: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Diary{},
		&models.LikeDiary{},
		&models.Friend{},
	); err != nil {
		t.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	return db
}

// testConfig テスト用の設定
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  30 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Storage: config.StorageConfig{
			Provider:      "fake",
			MaxUploadSize: 10 * 1024 * 1024,
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
	}
}

// createTestUser テスト用ユーザーを作成
func createTestUser(t *testing.T, db *gorm.DB, email, nickname string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("abc123!@"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("パスワードのハッシュ化に失敗しました: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Nickname: nickname,
		Role:     "user",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("テスト用ユーザーの作成に失敗しました: %v", err)
	}
	return user
}

// fakeImageService テスト用のImageService実装
type fakeImageService struct {
	uploads int
	deletes []string
}

func (s *fakeImageService) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://images.test/%d.png", s.uploads), nil
}

func (s *fakeImageService) Delete(imageURL string) error {
	s.deletes = append(s.deletes, imageURL)
	return nil
}

// fakeUploadFile multipart.Fileを満たすテスト用ファイル
type fakeUploadFile struct {
	*bytes.Reader
}

func (fakeUploadFile) Close() error { return nil }

// testImage アップロード用のファイルとヘッダーを作成
func testImage(name string) (multipart.File, *multipart.FileHeader) {
	data := []byte("test image bytes")
	return fakeUploadFile{bytes.NewReader(data)}, &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(data)),
	}
}

// memoryTokenRepo テスト用のインメモリTokenRepository実装
type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: map[string]string{}}
}

func (r *memoryTokenRepo) Save(ctx context.Context, email, refreshToken string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[email] = refreshToken
	return nil
}

func (r *memoryTokenRepo) Find(ctx context.Context, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[email]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	return token, nil
}

func (r *memoryTokenRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, email)
	return nil
}

// newTestDiaryService 依存をまとめて組み立てる
func newTestDiaryService(t *testing.T) (DiaryService, *gorm.DB, *fakeImageService) {
	t.Helper()

	db := setupTestDB(t)
	images := &fakeImageService{}
	service := NewDiaryService(
		repository.NewDiaryRepository(db),
		repository.NewLikeRepository(db),
		repository.NewUserRepository(db),
		repository.NewFriendRepository(db),
		images,
	)
	return service, db, images
}
