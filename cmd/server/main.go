package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	httphandler "github.com/fuisonguest/retrand/internal/adapter/http/handler"
	"github.com/fuisonguest/retrand/internal/adapter/http/router"
	"github.com/fuisonguest/retrand/internal/adapter/messaging/nats"
	"github.com/fuisonguest/retrand/internal/adapter/moderation"
	"github.com/fuisonguest/retrand/internal/adapter/payment"
	"github.com/fuisonguest/retrand/internal/adapter/repository/cache"
	"github.com/fuisonguest/retrand/internal/adapter/repository/mongodb"
	"github.com/fuisonguest/retrand/internal/adapter/storage/s3"
	"github.com/fuisonguest/retrand/internal/config"
	"github.com/fuisonguest/retrand/internal/listing/usecase"
	"github.com/fuisonguest/retrand/internal/mailer"
	"github.com/fuisonguest/retrand/internal/platform/tracer"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx)
	if err != nil {
		logger.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDB)

	listingRepo := mongodb.NewListingRepository(db)
	wishlistRepo, err := mongodb.NewWishlistRepository(ctx, db, logger)
	if err != nil {
		logger.Fatal("failed to initialize wishlist repository", zap.Error(err))
	}

	listingCache, err := cache.NewListingCache(ctx, cfg.RedisAddress)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer listingCache.Close()

	storage, err := s3.NewS3Storage(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, logger)
	if err != nil {
		logger.Fatal("failed to initialize media storage", zap.Error(err))
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Fatal("failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	moderator, err := moderation.NewClient(ctx, cfg.GeminiAPIKey, cfg.ModerationModel, cfg.ModerationTimeout)
	if err != nil {
		logger.Fatal("failed to initialize moderation client", zap.Error(err))
	}
	if moderator == nil {
		logger.Warn("moderation is not configured; uploads are accepted with a warning")
	}

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	verifier := payment.NewRazorpayVerifier(cfg.RazorpayKeySecret)
	if cfg.PaymentAllowUnverified {
		logger.Warn("unverified payment confirmations are enabled; do not run this in production")
	}

	listingUC := usecase.NewListingUsecase(listingRepo, wishlistRepo, storage, listingCache, publisher, mail, logger)
	promotionUC := usecase.NewPromotionUsecase(listingRepo, verifier, listingCache, publisher, mail, cfg.PaymentAllowUnverified, logger)
	feedUC := usecase.NewFeedUsecase(listingRepo, logger)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, listingRepo, logger)

	mux := router.New(
		httphandler.NewListingHandler(listingUC, feedUC, logger),
		httphandler.NewPromotionHandler(promotionUC, logger),
		httphandler.NewWishlistHandler(wishlistUC, logger),
		httphandler.NewModerationHandler(moderator, logger),
		cfg.JWTSecret,
		logger,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
