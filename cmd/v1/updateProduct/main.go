package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"gitlab.connectwisedev.com/product-management/pkg/cache"
	"gitlab.connectwisedev.com/product-management/pkg/config"
	"gitlab.connectwisedev.com/product-management/pkg/product"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

var handler *product.Handler

func init() {
	config.LoadEnv() // Load environment variables first
	cfg := config.Load()

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage gateway: %v", err)
	}

	handler = product.NewHandler(store, log.Default()).WithTimeout(cfg.StorageTimeout)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}
		handler = handler.WithCache(redisClient)
	}
}

func main() {
	lambda.Start(handler.Update)
}
