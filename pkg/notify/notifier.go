package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"gitlab.connectwisedev.com/product-management/models"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

const summaryHeader = "Upcoming Products:\n\n"

// Publisher delivers a composed summary to the outbound notification
// channel. Delivery guarantees are the channel's problem, not ours.
type Publisher interface {
	Publish(ctx context.Context, subject, message string) error
}

// Notifier composes the product summary message and hands it off.
type Notifier struct {
	store     storage.Gateway
	publisher Publisher
	logger    *log.Logger
}

// NewNotifier builds a Notifier. publisher may be nil, in which case the
// summary is only logged (useful locally, and mirrors a dry-run mode).
func NewNotifier(store storage.Gateway, publisher Publisher, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{store: store, publisher: publisher, logger: logger}
}

// BuildSummary renders one "{name} - {date}" line per product under a
// fixed header. An empty product set yields just the header.
func BuildSummary(products []models.Product) string {
	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("%s - %s", p.Name, p.Date)
	}
	return summaryHeader + strings.Join(lines, "\n")
}

// Send reads the current product set, builds the summary and publishes it.
func (n *Notifier) Send(ctx context.Context) error {
	products, err := n.store.Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to read products for summary: %w", err)
	}

	content := BuildSummary(products)
	if n.publisher == nil {
		n.logger.Printf("Sending email with content: %s", content)
		return nil
	}
	if err := n.publisher.Publish(ctx, "Product Summary", content); err != nil {
		return fmt.Errorf("failed to publish product summary: %w", err)
	}
	return nil
}

// HandleSendSummary is the sendProductSummary lambda handler. It always
// reports success to its invoker; read or publish failures are logged and
// stay local to this operation.
func (n *Notifier) HandleSendSummary(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	if err := n.Send(ctx); err != nil {
		n.logger.Printf("Error sending product summary: %v", err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"message": "Product summary sent successfully"}`,
	}, nil
}
