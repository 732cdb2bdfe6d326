package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageService 日記画像のアップロード・削除を行うインターフェース
type ImageService interface {
	Upload(file multipart.File, header *multipart.FileHeader) (string, error)
	Delete(imageURL string) error
}

// NewImageService 設定のプロバイダに応じてImageServiceを作成
func NewImageService(cfg *config.Config) (ImageService, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return newS3ImageService(cfg)
	case "cloudinary":
		return newCloudinaryImageService(cfg)
	default:
		return nil, fmt.Errorf("不明なストレージプロバイダです: %s", cfg.Storage.Provider)
	}
}

// validateImage 拡張子とサイズを確認
func validateImage(cfg *config.Config, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))

	allowed := false
	for _, t := range cfg.Storage.AllowedTypes {
		if ext == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", apperrors.NewBadRequest(fmt.Sprintf("拡張子 %s は許可されていません", ext))
	}

	if header.Size > cfg.Storage.MaxUploadSize {
		return "", apperrors.NewBadRequest(fmt.Sprintf("ファイルサイズが大きすぎます (最大 %d MB)", cfg.Storage.MaxUploadSize/1024/1024))
	}

	return ext, nil
}

// cloudinaryImageService Cloudinaryを使ったImageServiceの実装
type cloudinaryImageService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

func newCloudinaryImageService(cfg *config.Config) (ImageService, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	return &cloudinaryImageService{cld: cld, cfg: cfg}, nil
}

// Upload 画像をCloudinaryにアップロード
func (s *cloudinaryImageService) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if _, err := validateImage(s.cfg, header); err != nil {
		return "", err
	}

	result, err := s.cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       s.cfg.Cloudinary.Folder,
		PublicID:     uuid.New().String(),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}

	return result.SecureURL, nil
}

// Delete 画像をCloudinaryから削除
func (s *cloudinaryImageService) Delete(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	publicID := cloudinaryPublicID(imageURL)
	if publicID == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("Cloudinaryからの削除に失敗しました: %v", err)
	}

	return nil
}

// cloudinaryPublicID 配信URLからpublic IDを取り出す
// 例: https://res.cloudinary.com/demo/image/upload/v1234/dailymate/abc.jpg -> dailymate/abc
func cloudinaryPublicID(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/upload/")
	if len(parts) != 2 {
		return ""
	}

	id := parts[1]

	// バージョンセグメント（v12345/）を取り除く
	if strings.HasPrefix(id, "v") {
		if idx := strings.Index(id, "/"); idx > 0 {
			version := id[1:idx]
			if _, err := fmt.Sscanf(version, "%d", new(int)); err == nil {
				id = id[idx+1:]
			}
		}
	}

	// 拡張子を取り除く
	return strings.TrimSuffix(id, path.Ext(id))
}

// s3ImageService AWS S3を使ったImageServiceの実装
type s3ImageService struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	cfg      *config.Config
}

func newS3ImageService(cfg *config.Config) (ImageService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの初期化に失敗しました: %v", err)
	}

	return &s3ImageService{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		cfg:      cfg,
	}, nil
}

// Upload 画像をS3にアップロード
func (s *s3ImageService) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext, err := validateImage(s.cfg, header)
	if err != nil {
		return "", err
	}

	key := "diary/" + uuid.New().String() + ext

	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.AWS.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("S3へのアップロードに失敗しました: %v", err)
	}

	if s.cfg.AWS.BaseURL != "" {
		return strings.TrimSuffix(s.cfg.AWS.BaseURL, "/") + "/" + key, nil
	}
	return result.Location, nil
}

// Delete 画像をS3から削除
func (s *s3ImageService) Delete(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return nil
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil
	}

	if _, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AWS.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("S3からの削除に失敗しました: %v", err)
	}

	return nil
}
