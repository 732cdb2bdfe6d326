package routes

import (
	"log"

	"github.com/DailyMate/dailymate_backend/internal/config"
	"github.com/DailyMate/dailymate_backend/internal/controllers"
	"github.com/DailyMate/dailymate_backend/internal/middlewares"
	"github.com/DailyMate/dailymate_backend/internal/repository"
	"github.com/DailyMate/dailymate_backend/internal/services"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	tokenRepo := repository.NewTokenRepository(redisClient)

	// 画像ストレージサービスを作成
	imageService, err := services.NewImageService(cfg)
	if err != nil {
		log.Fatalf("画像ストレージサービスの初期化に失敗しました: %v", err)
	}

	// サービスを作成
	tokenProvider := services.NewTokenProvider(cfg)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenProvider)
	userService := services.NewUserService(userRepo, tokenRepo)
	diaryService := services.NewDiaryService(diaryRepo, likeRepo, userRepo, friendRepo, imageService)
	friendService := services.NewFriendService(friendRepo, userRepo)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	diaryController := controllers.NewDiaryController(diaryService)
	friendController := controllers.NewFriendController(friendService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)

	// APIグループを作成
	api := r.Group("/api/v1")
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// 認証ルート
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authController.SignUp)
			auth.GET("/check-email", authController.CheckEmail)
			auth.GET("/check-nickname", authController.CheckNickname)
			auth.POST("/login", authController.Login)
			auth.POST("/reissue", authController.Reissue)
			auth.POST("/logout", authMiddleware, authController.Logout)
		}

		// ユーザールート
		users := api.Group("/users")
		{
			users.GET("/me", authMiddleware, userController.GetMe)
			users.PUT("/me", authMiddleware, userController.UpdateMe)
			users.DELETE("/me", authMiddleware, userController.Withdraw)
			users.PUT("/password", authMiddleware, userController.UpdatePassword)
			users.POST("/password/check", authMiddleware, userController.CheckPassword)
			users.GET("/search", authMiddleware, userController.Search)
		}

		// 日記ルート
		diary := api.Group("/diary")
		diary.Use(authMiddleware)
		{
			diary.POST("", diaryController.Create)
			diary.GET("", diaryController.GetByDate)
			diary.GET("/month", diaryController.GetByMonth)
			diary.GET("/friend/:id", diaryController.GetFriendDiary)
			diary.PUT("/:id", diaryController.Update)
			diary.DELETE("/:id", diaryController.Delete)
			diary.PUT("/:id/like", diaryController.ToggleLike)
		}

		// 友達ルート
		friends := api.Group("/friends")
		friends.Use(authMiddleware)
		{
			friends.GET("/all", friendController.ListFriends)
			friends.GET("/request/all", friendController.ListRequests)
			friends.POST("/request/:id", friendController.SendRequest)
			friends.PUT("/request/:id", friendController.AcceptRequest)
			friends.DELETE("/request/:id", friendController.DenyRequest)
			friends.DELETE("/:id", friendController.DeleteFriend)
		}
	}

	return r
}
