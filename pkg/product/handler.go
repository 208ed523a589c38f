package product

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gitlab.connectwisedev.com/product-management/models"
	"gitlab.connectwisedev.com/product-management/pkg/auth"
	"gitlab.connectwisedev.com/product-management/pkg/cache"
	"gitlab.connectwisedev.com/product-management/pkg/notify"
	"gitlab.connectwisedev.com/product-management/pkg/storage"
)

const defaultStorageTimeout = 5 * time.Second

// Handler implements the product CRUD operations behind API Gateway.
// A Handler without a verifier serves the unauthenticated v1 API; with a
// verifier attached, every mutating operation (create, update, delete)
// gates on it while reads stay open.
type Handler struct {
	store    storage.Gateway
	cache    *cache.RedisClient
	verifier *auth.Verifier
	notifier *notify.Notifier
	logger   *log.Logger
	timeout  time.Duration
}

// NewHandler creates a Handler backed by the given storage gateway.
func NewHandler(store storage.Gateway, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, logger: logger, timeout: defaultStorageTimeout}
}

// WithCache attaches a Redis cache used by List.
func (h *Handler) WithCache(c *cache.RedisClient) *Handler {
	h.cache = c
	return h
}

// WithVerifier attaches a credential verifier, gating mutating operations.
func (h *Handler) WithVerifier(v *auth.Verifier) *Handler {
	h.verifier = v
	return h
}

// WithNotifier attaches the post-create summary notifier.
func (h *Handler) WithNotifier(n *notify.Notifier) *Handler {
	h.notifier = n
	return h
}

// WithTimeout bounds each storage gateway call.
func (h *Handler) WithTimeout(d time.Duration) *Handler {
	if d > 0 {
		h.timeout = d
	}
	return h
}

// createdResponse is the authenticated create response envelope: the new
// product plus the claims of the caller that created it.
type createdResponse struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
	User    jwt.MapClaims  `json:"user"`
}

// Create handles POST /products. With a verifier attached the response
// echoes the verified claims alongside the created product.
func (h *Handler) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var claims jwt.MapClaims
	if h.verifier != nil {
		var err error
		claims, err = h.verifier.Verify(req.Headers)
		if err != nil {
			return messageResponse(http.StatusUnauthorized, err.Error())
		}
	}

	in, resp, ok := parseInput(req.Body)
	if !ok {
		return resp, nil
	}

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.store.Put(sctx, p); err != nil {
		h.logger.Printf("Error storing product %s: %v", p.ID, err)
		return h.storageFailure(err, "Failed to create product")
	}

	h.invalidateCache(ctx)

	// The write is committed; a broken notification channel must never
	// turn this into a failure response.
	if h.notifier != nil {
		if err := h.notifier.Send(ctx); err != nil {
			h.logger.Printf("Error sending product summary after create: %v", err)
		}
	}

	if claims != nil {
		return jsonResponse(http.StatusCreated, createdResponse{
			Message: "Product created",
			Product: p,
			User:    claims,
		})
	}
	return jsonResponse(http.StatusCreated, p)
}

// List handles GET /products, serving from cache when possible.
func (h *Handler) List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.cache != nil {
		products, err := h.cache.Products(ctx)
		if err == nil {
			return jsonResponse(http.StatusOK, products)
		}
		h.logger.Printf("Error fetching from Redis (%v), falling back to DB.", err)
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	products, err := h.store.Scan(sctx)
	if err != nil {
		h.logger.Printf("Error fetching products: %v", err)
		return h.storageFailure(err, "Failed to retrieve products")
	}

	if h.cache != nil {
		// Repopulate off the request path, like the DB-fallback cache fill.
		go func() {
			cctx, ccancel := context.WithTimeout(context.Background(), h.timeout)
			defer ccancel()
			if err := h.cache.Populate(cctx, products); err != nil {
				h.logger.Printf("Failed to populate cache after DB fetch: %v", err)
			}
		}()
	}

	return jsonResponse(http.StatusOK, products)
}

// GetByID handles GET /products/{id}.
func (h *Handler) GetByID(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return messageResponse(http.StatusBadRequest, "Missing product id")
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	p, err := h.store.Get(sctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return jsonResponse(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		h.logger.Printf("Error fetching product %s: %v", id, err)
		return h.storageFailure(err, "Failed to retrieve product")
	}
	return jsonResponse(http.StatusOK, p)
}

// Update handles PUT /products/{id}: a full overwrite of the three mutable
// fields. Updating a missing id reports 404 rather than silently succeeding.
func (h *Handler) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.verifier != nil {
		if _, err := h.verifier.Verify(req.Headers); err != nil {
			return messageResponse(http.StatusUnauthorized, err.Error())
		}
	}

	id := req.PathParameters["id"]
	if id == "" {
		return messageResponse(http.StatusBadRequest, "Missing product id")
	}

	in, resp, ok := parseInput(req.Body)
	if !ok {
		return resp, nil
	}

	p := models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.store.Update(sctx, p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return jsonResponse(http.StatusNotFound, map[string]string{"error": "Product not found"})
		}
		h.logger.Printf("Error updating product %s: %v", id, err)
		return h.storageFailure(err, "Failed to update product")
	}

	h.invalidateCache(ctx)
	return jsonResponse(http.StatusOK, p)
}

// Delete handles DELETE /products/{id}. Deleting a missing id succeeds, so
// retried deletes stay safe.
func (h *Handler) Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.verifier != nil {
		if _, err := h.verifier.Verify(req.Headers); err != nil {
			return messageResponse(http.StatusUnauthorized, err.Error())
		}
	}

	id := req.PathParameters["id"]
	if id == "" {
		return messageResponse(http.StatusBadRequest, "Missing product id")
	}

	sctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.store.Delete(sctx, id); err != nil {
		h.logger.Printf("Error deleting product %s: %v", id, err)
		return h.storageFailure(err, "Failed to delete product")
	}

	h.invalidateCache(ctx)
	return messageResponse(http.StatusOK, "Product deleted successfully")
}

func (h *Handler) invalidateCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Printf("Failed to invalidate product cache: %v", err)
	}
}

// storageFailure maps a storage error to a transport response: timeouts as
// 502 so callers can tell a slow backend from a broken one, anything else
// as 500 with the given message.
func (h *Handler) storageFailure(err error, msg string) (events.APIGatewayProxyResponse, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		return messageResponse(http.StatusBadGateway, "Storage timeout")
	}
	return messageResponse(http.StatusInternalServerError, msg)
}

// parseInput decodes and validates a create/update body. Invalid bodies are
// rejected before any storage call; ok is false when resp should be
// returned as-is.
func parseInput(body string) (models.ProductInput, events.APIGatewayProxyResponse, bool) {
	var in models.ProductInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		resp, _ := messageResponse(http.StatusBadRequest, "Invalid request body")
		return in, resp, false
	}
	if !in.Validate() {
		resp, _ := messageResponse(http.StatusBadRequest, "name, description and date are required")
		return in, resp, false
	}
	return in, events.APIGatewayProxyResponse{}, true
}
