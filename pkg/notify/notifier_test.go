package notify

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"gitlab.connectwisedev.com/product-management/models"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

type capturingPublisher struct {
	subject string
	message string
	err     error
}

func (p *capturingPublisher) Publish(ctx context.Context, subject, message string) error {
	p.subject = subject
	p.message = message
	return p.err
}

func TestBuildSummaryEmpty(t *testing.T) {
	got := BuildSummary(nil)
	if got != "Upcoming Products:\n\n" {
		t.Fatalf("expected bare header, got %q", got)
	}
}

func TestBuildSummaryLines(t *testing.T) {
	products := []models.Product{
		{Name: "Widget", Date: "2025-01-01"},
		{Name: "Gadget", Date: "2025-02-02"},
	}
	got := BuildSummary(products)
	want := "Upcoming Products:\n\nWidget - 2025-01-01\nGadget - 2025-02-02"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSendHandsOffPayload(t *testing.T) {
	store := storage.NewMemoryGateway()
	store.Put(context.Background(), models.Product{ID: "p1", Name: "Widget", Date: "2025-01-01"})

	pub := &capturingPublisher{}
	n := NewNotifier(store, pub, log.Default())
	if err := n.Send(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(pub.message, "Upcoming Products:") {
		t.Fatalf("published payload missing header: %q", pub.message)
	}
	if !strings.Contains(pub.message, "Widget - 2025-01-01") {
		t.Fatalf("published payload missing product line: %q", pub.message)
	}
}

func TestSendPropagatesPublisherFailure(t *testing.T) {
	store := storage.NewMemoryGateway()
	pub := &capturingPublisher{err: errors.New("channel down")}
	n := NewNotifier(store, pub, log.Default())

	if err := n.Send(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface to the caller")
	}
}

type brokenGateway struct {
	storage.Gateway
}

func (brokenGateway) Scan(ctx context.Context) ([]models.Product, error) {
	return nil, errors.New("table unavailable")
}

func TestHandleSendSummaryAlwaysSucceeds(t *testing.T) {
	n := NewNotifier(brokenGateway{}, nil, log.Default())

	resp, err := n.HandleSendSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 despite read failure, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Product summary sent successfully") {
		t.Fatalf("unexpected body: %s", resp.Body)
	}
}
