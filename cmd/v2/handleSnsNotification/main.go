package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"gitlab.connectwisedev.com/product-management/pkg/config"
	"gitlab.connectwisedev.com/product-management/pkg/intake"
)

var consumer *intake.Intake

func init() {
	config.LoadEnv() // Load environment variables first
	consumer = intake.NewIntake(nil, log.Default())
}

func main() {
	lambda.Start(consumer.HandleBatch)
}
