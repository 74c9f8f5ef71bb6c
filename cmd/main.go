package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/config"
	"sneaksync/internal/controller"
	"sneaksync/internal/middleware"
	"sneaksync/internal/repository"
	"sneaksync/internal/router"
	"sneaksync/internal/service"
	"sneaksync/internal/task"
	"sneaksync/pkg/database"
	"sneaksync/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "sneaksync",
		Usage: "sneaker marketplace backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				EnvVars: []string{"SNEAKSYNC_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the collections and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB // 未配置 DATABASE_URL 时为 nil
	Store       repository.Store
	Limiter     *middleware.IPRateLimiter
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Health   *service.HealthService
	Product  *service.ProductService
	Listing  *service.ListingService
	Offer    *service.OfferService
	Checkout *service.CheckoutService
}

// ==================== 命令 ====================

// serve 启动 HTTP 服务
func serve(c *cli.Context) error {
	deps, err := initDependencies(c.String("config"))
	if err != nil {
		return err
	}
	defer deps.close()

	// 定时任务
	monitor := task.NewStoreMonitor(deps.Services.Health, deps.Limiter, deps.Config.Monitor.Spec, deps.Logger)
	if err := monitor.Start(); err != nil {
		return err
	}
	defer monitor.Stop()

	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:  deps.Logger,
		Store:   deps.Services.Health,
		Limiter: deps.Limiter,
	})

	return startServer(deps, r)
}

// migrate 只执行建表
func migrate(c *cli.Context) error {
	cfg, log, err := initBase(c.String("config"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Database.Configured() {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := initDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(c.Context, time.Minute)
	defer cancel()
	if err := repository.AutoMigrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("migration finished")
	return nil
}

// ==================== 初始化函数 ====================

// initBase 加载配置与日志
func initBase(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// initDatabase 连接数据库
func initDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.InitDB(cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	log.Info("database connected", zap.String("database", cfg.Database.Name))
	return db, nil
}

// initStore 连接数据库并建表
func initStore(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := initDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := repository.AutoMigrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// initDependencies 初始化所有依赖
// 未配置 DATABASE_URL 时不创建存储，数据接口一律返回 503；
// 已配置但连接或迁移失败直接返回错误，不带着失效的存储启动
func initDependencies(configPath string) (*Dependencies, error) {
	cfg, log, err := initBase(configPath)
	if err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)

	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	deps := &Dependencies{
		Config:  cfg,
		Logger:  log,
		Limiter: middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}

	// -------- 存储层 --------
	if cfg.Database.Configured() {
		db, err := initStore(cfg, log)
		if err != nil {
			_ = log.Sync()
			return nil, err
		}
		deps.DB = db
		deps.Store = repository.NewStore(db)
	} else {
		log.Warn("DATABASE_URL not set, data endpoints will return 503")
	}

	// -------- 业务服务 --------
	deps.Services = initServices(cfg, deps.Store, log)

	// -------- Controller 层 --------
	deps.Controllers = initControllers(deps.Services, log)

	return deps, nil
}

func initServices(cfg *config.Config, store repository.Store, log *zap.Logger) *Services {
	listing := service.NewListingService(store, log.Named("listing"))
	return &Services{
		Health:   service.NewHealthService(store, cfg.Database.URL, cfg.Database.Name, log.Named("health")),
		Product:  service.NewProductService(store),
		Listing:  listing,
		Offer:    service.NewOfferService(store, log.Named("offer")),
		Checkout: service.NewCheckoutService(store, listing, log.Named("checkout")),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, log *zap.Logger) *router.Controllers {
	return &router.Controllers{
		Health:  controller.NewHealthController(svc.Health),
		Product: controller.NewProductController(svc.Product, log),
		Listing: controller.NewListingController(svc.Listing, svc.Offer, log),
		Offer:   controller.NewOfferController(svc.Offer, log),
		Order:   controller.NewOrderController(svc.Checkout, log),
	}
}

func (d *Dependencies) close() {
	if d.DB != nil {
		if err := database.Close(d.DB); err != nil {
			d.Logger.Warn("close database", zap.Error(err))
		}
	}
	_ = d.Logger.Sync()
}

// ==================== 服务启动 ====================

// startServer 启动服务并在收到退出信号后优雅关闭
func startServer(deps *Dependencies, r *gin.Engine) error {
	port := deps.Config.Server.Port
	log := deps.Logger

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}
