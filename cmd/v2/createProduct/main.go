package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"gitlab.connectwisedev.com/product-management/pkg/auth"
	"gitlab.connectwisedev.com/product-management/pkg/cache"
	"gitlab.connectwisedev.com/product-management/pkg/config"
	"gitlab.connectwisedev.com/product-management/pkg/notify"
	"gitlab.connectwisedev.com/product-management/pkg/product"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

var handler *product.Handler

func init() {
	config.LoadEnv() // Load environment variables first
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage gateway: %v", err)
	}

	var publisher notify.Publisher
	if cfg.SNSTopicARN != "" {
		publisher, err = notify.NewSNSPublisher(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize SNS publisher: %v", err)
		}
	}
	notifier := notify.NewNotifier(store, publisher, log.Default())

	handler = product.NewHandler(store, log.Default()).
		WithTimeout(cfg.StorageTimeout).
		WithVerifier(auth.NewVerifier(cfg.JWTSecret)).
		WithNotifier(notifier)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}
		handler = handler.WithCache(redisClient)
	}
}

func main() {
	lambda.Start(handler.Create)
}
