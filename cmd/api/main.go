package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	"marketplace/internal/infra/kafka"
	"marketplace/internal/infra/memory"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/metrics"
	repo "marketplace/internal/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// ストレージ実装（postgres / memory）の組み合わせ
type storage struct {
	customers repo.CustomerRepository
	products  repo.ProductRepository
	orders    repo.OrderRepository
	tx        repo.TransactionManager
	close     func()
}

func main() {
	//.envは無くてもよい（環境変数で渡す場合）
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug(".env not loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	setupLogger(cfg)
	logger := log.WithField("service", cfg.ServiceName)

	st, err := openStorage(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open storage")
	}
	defer st.close()

	//Kafka（未設定なら送信しない）
	var publisher usecase.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewOrderEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.ServiceName,
			logger.WithField("component", "order_event_publisher"))
		if err != nil {
			logger.WithError(err).Fatal("failed to create kafka publisher")
		}
		defer func() {
			if err := p.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka publisher")
			}
		}()
		publisher = p
	}

	orderMetrics := metrics.NewOrderMetrics(nil)

	//Usecase生成
	customerUC := usecase.NewCustomerUsecase(st.customers, logger.WithField("component", "customer_usecase"))
	productUC := usecase.NewProductUsecase(st.products, logger.WithField("component", "product_usecase"))
	orderUC := usecase.NewOrderUsecase(st.tx, st.orders, publisher, orderMetrics,
		logger.WithField("component", "order_usecase"))

	//Handler生成
	e := server.New(server.Handlers{
		Customers: handler.NewCustomerHandler(customerUC),
		Products:  handler.NewProductHandler(productUC),
		Orders:    handler.NewOrderHandler(orderUC),
	}, server.Options{
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.WithField("component", "http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	if err := server.Start(ctx, e, cfg.ListenAddr(), logger); err != nil {
		logger.WithError(err).Error("http server stopped with error")
	}
}

func setupLogger(cfg config.Config) {
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func openStorage(cfg config.Config, logger *log.Entry) (storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		s := memory.NewStore()
		return storage{
			customers: s.Customers(),
			products:  s.Products(),
			orders:    s.Orders(),
			tx:        memory.NewTxManager(s),
			close:     func() {},
		}, nil
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return storage{}, err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return storage{}, err
		}
	}

	closeDB := func() {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			logger.WithError(err).Warn("failed to close database")
		}
	}

	//Repository（GORM実装）生成
	return storage{
		customers: infraRepo.NewCustomerGormRepository(gormDB),
		products:  infraRepo.NewProductGormRepository(gormDB),
		orders:    infraRepo.NewOrderGormRepository(gormDB),
		tx:        infraRepo.NewTxManagerGorm(gormDB),
		close:     closeDB,
	}, nil
}
