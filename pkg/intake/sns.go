package intake

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
)

// Processor handles the payload of a single fan-out message.
type Processor func(ctx context.Context, message string) error

// Intake consumes SNS notification batches. Each record is processed
// independently: one bad message never aborts the rest of the batch or
// fails the handler, since the transport redelivers on handler failure.
type Intake struct {
	process Processor
	logger  *log.Logger
}

// NewIntake builds an Intake. A nil processor defaults to logging the
// message payload.
func NewIntake(process Processor, logger *log.Logger) *Intake {
	if logger == nil {
		logger = log.Default()
	}
	i := &Intake{process: process, logger: logger}
	if i.process == nil {
		i.process = func(ctx context.Context, message string) error {
			i.logger.Printf("SNS Message: %s", message)
			return nil
		}
	}
	return i
}

// HandleBatch processes every record in the SNS event.
func (i *Intake) HandleBatch(ctx context.Context, event events.SNSEvent) (events.APIGatewayProxyResponse, error) {
	for _, record := range event.Records {
		i.processRecord(ctx, record.SNS.Message)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"message": "SNS notification processed successfully"}`,
	}, nil
}

// processRecord isolates a single message: errors are logged and panics
// recovered so the remaining records still run.
func (i *Intake) processRecord(ctx context.Context, message string) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Printf("Panic processing SNS message: %v", r)
		}
	}()
	if err := i.process(ctx, message); err != nil {
		i.logger.Printf("Error processing SNS message: %v", err)
	}
}
