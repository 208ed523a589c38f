package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"gitlab.connectwisedev.com/product-management/pkg/config"
	"gitlab.connectwisedev.com/product-management/pkg/notify"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

var notifier *notify.Notifier

func init() {
	config.LoadEnv() // Load environment variables first
	cfg := config.Load()

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
	notifier = notify.NewNotifier(store, publisher, log.Default())
}

func main() {
	lambda.Start(notifier.HandleSendSummary)
}
