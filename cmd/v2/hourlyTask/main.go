package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"gitlab.connectwisedev.com/product-management/pkg/config"
	"gitlab.connectwisedev.com/product-management/pkg/tasks"
)

var task *tasks.HourlyTask

func init() {
	config.LoadEnv() // Load environment variables first
	task = tasks.NewHourlyTask(log.Default())
}

func main() {
	lambda.Start(task.Run)
}
