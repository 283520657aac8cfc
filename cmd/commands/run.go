package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"paintrack"
	"paintrack/config"
	"paintrack/internal/application/usecase"
	minioRepository "paintrack/internal/domain/repository/minio"
	"paintrack/internal/infrastructure/broker"
	"paintrack/internal/infrastructure/database"
	"paintrack/internal/infrastructure/imageproc"
	"paintrack/internal/infrastructure/metrics"
	"paintrack/internal/infrastructure/minio"
	"paintrack/internal/infrastructure/s3"
	"paintrack/internal/presentation/handler"
	"paintrack/internal/presentation/middleware"
	"paintrack/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running paintrack", "version", paintrack.StringVersion())

	m := metrics.Default()

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer brokerClient.Close()

	brokerPublisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer func() {
		if err := db.Stop(); err != nil {
			logger.Error("failed to disconnect database", "err", err)
		}
	}()

	dbWriter := database.NewPhotoWriter(db)
	dbRemover := database.NewPhotoRemover(db)
	dbRetriever := database.NewPhotoRetriever(db)
	dbLister := database.NewPhotoLister(db)

	minIOClient, err := minio.New(cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSetup()

	if err := minIOClient.EnsureBucket(setupCtx, cfg.MinIOUploader.Bucket, cfg.MinIOClient.Region); err != nil {
		ExitOnError(fmt.Errorf("ensure bucket: %w", err))
	}

	visibility, err := newVisibility(setupCtx, cfg, minIOClient)
	if err != nil {
		ExitOnError(err)
	}

	minIOUploader := minio.NewUploader(minIOClient.MinioClient, visibility, m, cfg.MinIOUploader)
	minIORemover := minio.NewRemover(minIOClient.MinioClient, m, cfg.MinIORemover)
	minIOStater := minio.NewStater(minIOClient.MinioClient, m, cfg.MinIORemover)

	transcoder := imageproc.NewTranscoder(cfg.Image.MaxConcurrentTranscodes, imageproc.WithMetrics(m))
	variants := imageproc.NewVariantGenerator(transcoder, cfg.Image.Quality, m)

	uploader := usecase.NewUploader(transcoder, variants, minIOUploader, minIORemover, m, usecase.UploaderConfig{
		Quality:   cfg.Image.Quality,
		MaxWidth:  cfg.Image.MaxWidth,
		MaxHeight: cfg.Image.MaxHeight,
		Sizes:     cfg.Image.ResponsiveSizes,
	})
	attacher := usecase.NewAttacher(uploader, dbWriter, dbRemover, minIORemover, brokerPublisher)
	deleter := usecase.NewDeleter(dbRemover, minIORemover)
	getter := usecase.NewGetter(dbRetriever, minIOStater)
	lister := usecase.NewLister(dbLister)

	uploadHandler := handler.NewUploadHandler(attacher)
	deleteHandler := handler.NewDeleteHandler(deleter)
	headHandler := handler.NewHeadHandler(getter)
	getHandler := handler.NewGetHandler(getter)
	listHandler := handler.NewListHandler(lister)

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	if cfg.HTTP.BodyLimit != "" {
		e.Use(echoMiddleware.BodyLimit(cfg.HTTP.BodyLimit))
	}
	if cfg.HTTP.RateLimit > 0 {
		e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.HTTP.RateLimit))))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/images", uploadHandler.Handle, auth, middleware.UploadGuard(cfg.Upload))
	api.GET("/images", listHandler.HandleList, auth)
	api.GET("/images/*", getHandler.HandleGet)
	api.HEAD("/images/*", headHandler.HandleHead)
	api.DELETE("/images/*", deleteHandler.HandleDelete, auth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down paintrack")

	shutdownTimeout := time.Duration(cfg.HTTP.ShutdownTimeoutMS) * time.Millisecond
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown http server", "err", err)
	}
}

func newVisibility(ctx context.Context, cfg *config.Config, client *minio.Client) (minioRepository.Visibility, error) {
	switch cfg.MinIOUploader.Visibility {
	case config.VisibilityACL:
		acl, err := s3.NewACLVisibility(ctx, cfg.S3ACL)
		if err != nil {
			return nil, fmt.Errorf("s3 acl client: %w", err)
		}

		return acl, nil
	case config.VisibilityNone:
		return minio.NoopVisibility{}, nil
	default:
		return minio.NewPolicyVisibility(client.MinioClient, cfg.MinIOUploader.PublicPrefix), nil
	}
}
