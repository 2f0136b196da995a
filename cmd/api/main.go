package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// main 主程序入口
// 说明:手动依赖注入,组装顺序 Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)).
		Str("redis", cfg.Redis.Addr()).
		Msg("配置加载成功")

	// 3. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init("bookshop-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer shutdown(context.Background())
	}

	// 4. 初始化数据库与连接池
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化数据库失败")
	}
	pool, err := mysql.NewConnPool(db, cfg.Database.PoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化连接池失败")
	}

	// 5. 初始化Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化Redis失败")
	}

	// 6. 消息队列(可选):交易完成事件
	var publisher appsale.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化消息队列失败")
		}
		defer p.Close()
		publisher = p
	}

	// 7. 依赖注入(手动组装)

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	saleRepo := mysql.NewSaleRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := cache.NewBookCache(cache.DefaultTTL)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
	addBookUseCase := appbook.NewAddBookUseCase(bookService, bookCache)
	adjustStockUseCase := appbook.NewAdjustStockUseCase(bookRepo, txManager, bookCache)
	getBookUseCase := appbook.NewGetBookUseCase(mysql.NewPooledBookReader(pool), bookCache)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	createSaleUseCase := appsale.NewCreateSaleUseCase(saleRepo, bookRepo, txManager, bookCache, publisher)
	listSalesUseCase := appsale.NewListSalesUseCase(saleRepo)
	statsUseCase := appdashboard.NewStatsUseCase(bookRepo, saleRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, jwtManager)
	bookHandler := handler.NewBookHandler(addBookUseCase, adjustStockUseCase, getBookUseCase, listBooksUseCase)
	saleHandler := handler.NewSaleHandler(createSaleUseCase, listSalesUseCase)
	dashboardHandler := handler.NewDashboardHandler(statsUseCase)
	healthHandler := handler.NewHealthHandler(pool, redisClient)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, saleHandler, dashboardHandler, healthHandler, authMiddleware)

	// 9. 启动服务(优雅停机)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("启动服务失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("收到退出信号,开始优雅停机")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("停机超时,强制退出")
	}
	log.Info().Msg("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 存活探针
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	// 健康检查(探测数据库与Redis)
	r.GET("/health", healthHandler.Check)

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API文档: http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块(公开接口)
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.RefreshToken)
		}

		// 以下接口全部需要登录
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/users/logout", userHandler.Logout)

			// 店面看板
			authorized.GET("/dashboard", dashboardHandler.Stats)

			// 图书模块
			authorized.POST("/books", bookHandler.AddBook)
			authorized.GET("/books", bookHandler.ListBooks)
			authorized.POST("/books/stock", bookHandler.AdjustStock)
			authorized.GET("/books/all", bookHandler.ListAllBooks)
			authorized.GET("/book/:id", bookHandler.LookupBook)

			// 销售模块
			authorized.POST("/sales", saleHandler.CreateSale)
			authorized.GET("/sales", saleHandler.ListSales)
		}
	}
}
