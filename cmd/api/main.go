package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/library/docs"
	appbook "github.com/xiebiao/library/internal/application/book"
	appfine "github.com/xiebiao/library/internal/application/fine"
	appnotification "github.com/xiebiao/library/internal/application/notification"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	appreview "github.com/xiebiao/library/internal/application/review"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// @title           图书馆借阅系统 API
// @version         1.0
// @description     图书馆流通台服务:馆藏目录、借还续借、罚款与评论
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 说明:手动依赖注入,wire.go提供等价的Wire配置
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zapLogger, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()))

	// 3. 初始化数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		zapLogger.Fatal("初始化Redis失败", zap.Error(err))
	}

	// 4. 指标与消息队列
	m := metrics.New()

	var publisher appreservation.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			zapLogger.Fatal("初始化消息队列失败", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// 5. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	reservationRepo := mysql.NewReservationRepository(db)
	fineRepo := mysql.NewFineRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	calculator := fine.NewCalculator(cfg.Circulation.FineRatePerDay)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore, zapLogger, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)

	addBookUseCase := appbook.NewAddBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, bookCache, zapLogger)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, reservationRepo, txManager, bookCache, zapLogger)
	getBookUseCase := appbook.NewGetBookUseCase(bookRepo, reviewRepo, userRepo, bookCache, zapLogger)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	exportBooksUseCase := appbook.NewExportBooksUseCase(bookRepo)

	reserveUseCase := appreservation.NewReserveBookUseCase(
		reservationRepo, bookRepo, txManager, m, publisher, bookCache, zapLogger, cfg.Circulation.LoanPeriodDays)
	returnUseCase := appreservation.NewReturnBookUseCase(
		reservationRepo, bookRepo, fineRepo, notificationRepo, calculator, txManager, m, publisher, bookCache, zapLogger)
	renewUseCase := appreservation.NewRenewReservationUseCase(
		reservationRepo, m, publisher, zapLogger, cfg.Circulation.MaxRenewals)
	cancelUseCase := appreservation.NewCancelReservationUseCase(
		reservationRepo, bookRepo, txManager, m, publisher, bookCache, zapLogger)
	expireUseCase := appreservation.NewExpireOverdueUseCase(
		reservationRepo, notificationRepo, txManager, m, publisher, zapLogger)
	listReservationsUseCase := appreservation.NewListReservationsUseCase(reservationRepo, bookRepo)
	exportReservationsUseCase := appreservation.NewExportReservationsUseCase(reservationRepo, bookRepo, userRepo)

	payFineUseCase := appfine.NewPayFineUseCase(fineRepo, notificationRepo, zapLogger)
	listFinesUseCase := appfine.NewListFinesUseCase(fineRepo)
	addReviewUseCase := appreview.NewAddReviewUseCase(reviewRepo, bookRepo, txManager, bookCache, zapLogger)
	listNotificationsUseCase := appnotification.NewListNotificationsUseCase(notificationRepo)
	markReadUseCase := appnotification.NewMarkReadUseCase(notificationRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, jwtManager)
	bookHandler := handler.NewBookHandler(
		addBookUseCase, updateBookUseCase, deleteBookUseCase, getBookUseCase, listBooksUseCase, exportBooksUseCase)
	reservationHandler := handler.NewReservationHandler(
		reserveUseCase, returnUseCase, renewUseCase, cancelUseCase, listReservationsUseCase, exportReservationsUseCase)
	fineHandler := handler.NewFineHandler(payFineUseCase, listFinesUseCase)
	reviewHandler := handler.NewReviewHandler(addReviewUseCase)
	notificationHandler := handler.NewNotificationHandler(listNotificationsUseCase, markReadUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 后台逾期扫描
	if cfg.Circulation.ExpirySweepEnabled {
		go runExpirySweep(expireUseCase, cfg.Circulation.ExpirySweepEvery, zapLogger)
	}

	// 7. 初始化Gin引擎并注册路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(m.GinMiddleware())

	registerRoutes(r, m, userHandler, bookHandler, reservationHandler, fineHandler, reviewHandler, notificationHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("服务启动", zap.String("addr", addr))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("启动服务失败", zap.Error(err))
	}
}

// runExpirySweep 周期性扫描逾期借阅
// 启动时先跑一轮,之后按配置间隔执行
func runExpirySweep(uc *appreservation.ExpireOverdueUseCase, every time.Duration, zapLogger *zap.Logger) {
	sweep := func() {
		result, err := uc.Execute(context.Background())
		if err != nil {
			zapLogger.Error("逾期扫描失败", zap.Error(err))
			return
		}
		if result.Scanned > 0 {
			zapLogger.Info("逾期扫描完成",
				zap.Int("scanned", result.Scanned),
				zap.Int("expired", result.Expired))
		}
	}

	sweep()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	m *metrics.Metrics,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reservationHandler *handler.ReservationHandler,
	fineHandler *handler.FineHandler,
	reviewHandler *handler.ReviewHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", m.Handler())

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块(公开接口)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 公开接口:检索目录
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)

			// 馆员接口:目录管理与导出
			books.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), bookHandler.AddBook)
			books.GET("/export", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), bookHandler.ExportBooks)
			books.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), bookHandler.DeleteBook)

			// 评论(需要登录)
			books.POST("/:id/reviews", authMiddleware.RequireAuth(), reviewHandler.AddReview)
		}

		// 借阅模块(需要登录)
		reservations := v1.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			reservations.POST("", reservationHandler.Reserve)
			reservations.GET("", reservationHandler.List)
			reservations.GET("/export", authMiddleware.RequireAdmin(), reservationHandler.Export)
			reservations.PUT("/:id/return", reservationHandler.Return)
			reservations.PUT("/:id/renew", reservationHandler.Renew)
			reservations.PUT("/:id/cancel", reservationHandler.Cancel)
		}

		// 罚款模块(需要登录)
		fines := v1.Group("/fines")
		fines.Use(authMiddleware.RequireAuth())
		{
			fines.GET("", fineHandler.List)
			fines.PUT("/:id/pay", fineHandler.Pay)
		}

		// 通知模块(需要登录)
		notifications := v1.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}
	}
}
