package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raushankrgupta/storefront/api"
	"github.com/raushankrgupta/storefront/config"
	"github.com/raushankrgupta/storefront/emails"
	"github.com/raushankrgupta/storefront/repository"
	"github.com/raushankrgupta/storefront/services"
	"github.com/raushankrgupta/storefront/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.NewLogger(config.LogLevel)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.GetLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize MongoDB
	client, err := utils.ConnectMongo(ctx, config.MongoURI)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.DisconnectMongo(client)

	db := client.Database(config.DBName)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Warn("Failed to create indexes")
	}
	stores := repository.NewStores(db)

	mailer := &utils.SendGridMailer{
		APIKey:    config.SendGridAPIKey,
		FromName:  config.EmailFromName,
		FromEmail: config.EmailFromAddress,
		Logger:    logger,
	}

	var admins emails.AdminDirectory = emails.UserAdmins{Users: stores.Users}
	if len(config.AdminEmails) > 0 {
		admins = emails.StaticAdmins(config.AdminEmails)
	}
	notifier := emails.NewOutOfStockNotifier(mailer, admins, logger)

	products := services.NewProductManager(stores.Products, stores.Shops, notifier, logger)
	wishlists := services.NewWishlistManager(stores.Wishlists, products, logger)

	handler := &api.Handler{
		Products:     products,
		Wishlists:    wishlists,
		Shops:        stores.Shops,
		MirrorImages: config.MirrorProductImages,
		JWTSecret:    config.JWTSecret,
	}
	if config.AWSBucketName != "" {
		images, err := utils.NewImageStore(ctx, config.AWSRegion, config.AWSBucketName)
		if err != nil {
			logger.Fatalf("Failed to initialize S3: %v", err)
		}
		handler.Images = images
	}

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s...", config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	// Let pending out-of-stock emails finish before the client goes away.
	products.Drain()
}
