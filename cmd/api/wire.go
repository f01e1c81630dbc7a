//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式:
//  1. 修改本文件的Provider后运行 `wire gen ./cmd/api`
//  2. Wire生成wire_gen.go,包含完整的依赖创建代码
//
// main.go中保留了等价的手动装配,两者保持同步
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/library/internal/application/book"
	appfine "github.com/xiebiao/library/internal/application/fine"
	appnotification "github.com/xiebiao/library/internal/application/notification"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	appreview "github.com/xiebiao/library/internal/application/review"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/reservation"
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
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	mysql.NewDB,
	redis.NewClient,
	metrics.New,
	provideJWTManager,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewReservationRepository,
	mysql.NewFineRepository,
	mysql.NewReviewRepository,
	mysql.NewNotificationRepository,
	mysql.NewTxManager,
	redis.NewSessionStore,
	redis.NewBookCache,
	wire.Bind(new(appreservation.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appreview.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.Cache), new(*redis.BookCache)),
	wire.Bind(new(appreview.Cache), new(*redis.BookCache)),
	wire.Bind(new(appreservation.Cache), new(*redis.BookCache)),
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	provideCalculator,
)

// applicationSet 应用层依赖
// 构造参数含配置项(借期、续借上限、Token有效期)的用例使用自定义Provider
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewExportBooksUseCase,
	provideReserveUseCase,
	appreservation.NewReturnBookUseCase,
	provideRenewUseCase,
	appreservation.NewCancelReservationUseCase,
	appreservation.NewExpireOverdueUseCase,
	appreservation.NewListReservationsUseCase,
	appreservation.NewExportReservationsUseCase,
	appfine.NewPayFineUseCase,
	appfine.NewListFinesUseCase,
	appreview.NewAddReviewUseCase,
	appnotification.NewListNotificationsUseCase,
	appnotification.NewMarkReadUseCase,
)

// handlerSet 接口层依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReservationHandler,
	handler.NewFineHandler,
	handler.NewReviewHandler,
	handler.NewNotificationHandler,
	middleware.NewAuthMiddleware,
)

// provideLogger 从配置创建zap日志
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// providePublisher 从配置创建事件发布者(未启用时返回nil)
func providePublisher(cfg *config.Config) (appreservation.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideCalculator 从配置创建罚款计算器
func provideCalculator(cfg *config.Config) *fine.Calculator {
	return fine.NewCalculator(cfg.Circulation.FineRatePerDay)
}

// provideLoginUseCase 登录用例(需要Refresh Token有效期)
func provideLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore appuser.SessionStore,
	zapLogger *zap.Logger,
	cfg *config.Config,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, zapLogger, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例(需要Access Token有效期)
func provideLogoutUseCase(sessionStore appuser.SessionStore, cfg *config.Config) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideReserveUseCase 借书用例(需要借期配置)
func provideReserveUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
	txManager appreservation.TxManager,
	m *metrics.Metrics,
	publisher appreservation.EventPublisher,
	cache appreservation.Cache,
	zapLogger *zap.Logger,
	cfg *config.Config,
) *appreservation.ReserveBookUseCase {
	return appreservation.NewReserveBookUseCase(
		reservationRepo, bookRepo, txManager, m, publisher, cache, zapLogger, cfg.Circulation.LoanPeriodDays)
}

// provideRenewUseCase 续借用例(需要续借上限配置)
func provideRenewUseCase(
	reservationRepo reservation.Repository,
	m *metrics.Metrics,
	publisher appreservation.EventPublisher,
	zapLogger *zap.Logger,
	cfg *config.Config,
) *appreservation.RenewReservationUseCase {
	return appreservation.NewRenewReservationUseCase(
		reservationRepo, m, publisher, zapLogger, cfg.Circulation.MaxRenewals)
}

// provideGinEngine 创建Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	m *metrics.Metrics,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reservationHandler *handler.ReservationHandler,
	fineHandler *handler.FineHandler,
	reviewHandler *handler.ReviewHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(m.GinMiddleware())

	registerRoutes(r, m, userHandler, bookHandler, reservationHandler, fineHandler, reviewHandler, notificationHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
