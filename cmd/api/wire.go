//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 设计说明:
// 1. Wire是编译期依赖注入工具,运行 `wire gen ./cmd/api` 生成wire_gen.go
// 2. Provider按层分组,与main.go的手动组装一一对应
// 3. 接口与实现的绑定用wire.Bind声明(如Transactor ← *mysql.TxManager)

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appdashboard "github.com/xiebiao/bookshop/internal/application/dashboard"
	appsale "github.com/xiebiao/bookshop/internal/application/sale"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/mq"
	"gorm.io/gorm"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	provideConnPool,
	redis.NewClient,
	provideBookCache,
	provideEventPublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewSaleRepository,
	mysql.NewTxManager,
	mysql.NewPooledBookReader,
	wire.Bind(new(appsale.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appbook.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appbook.Finder), new(*mysql.PooledBookReader)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewAdjustStockUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appsale.NewCreateSaleUseCase,
	appsale.NewListSalesUseCase,
	appdashboard.NewStatsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewSaleHandler,
	handler.NewDashboardHandler,
	handler.NewHealthHandler,
)

// provideConnPool 从配置构建连接池句柄
func provideConnPool(db *gorm.DB, cfg *config.Config) (*mysql.ConnPool, error) {
	return mysql.NewConnPool(db, cfg.Database.PoolSize)
}

// provideBookCache 图书缓存(固定5分钟TTL)
func provideBookCache() *cache.BookCache {
	return cache.NewBookCache(cache.DefaultTTL)
}

// provideEventPublisher 交易事件发布器(未启用MQ时为nil)
func provideEventPublisher(cfg *config.Config) (appsale.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideLoginUseCase 登录用例(会话有效期取Refresh Token有效期)
func provideLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例(黑名单保留Access Token有效期)
func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideGinEngine 创建Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, saleHandler, dashboardHandler, healthHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// Wire会在wire_gen.go中生成实际的初始化代码,这里的返回值是占位符
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
