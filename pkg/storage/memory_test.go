package storage

import (
	"context"
	"errors"
	"testing"

	"gitlab.connectwisedev.com/product-management/models"
)

func TestMemoryGatewayRoundTrip(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	p := models.Product{ID: "p1", Name: "Widget", Description: "A widget", Date: "2025-01-01"}
	if err := g.Put(ctx, p); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := g.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestMemoryGatewayGetMissing(t *testing.T) {
	g := NewMemoryGateway()

	if _, err := g.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryGatewayUpdateMissing(t *testing.T) {
	g := NewMemoryGateway()

	err := g.Update(context.Background(), models.Product{ID: "nope", Name: "x", Description: "y", Date: "z"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryGatewayDeleteIdempotent(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	if err := g.Put(ctx, models.Product{ID: "p1", Name: "Widget"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := g.Delete(ctx, "p1"); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := g.Delete(ctx, "p1"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestMemoryGatewayScan(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	products, err := g.Scan(ctx)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", products)
	}

	g.Put(ctx, models.Product{ID: "a"})
	g.Put(ctx, models.Product{ID: "b"})
	products, err = g.Scan(ctx)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}
