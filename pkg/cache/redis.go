package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.connectwisedev.com/product-management/models"
)

const (
	allProductIDsKey = "all_product_ids"
	productKeyFmt    = "product:%s"
	// Individual product keys expire so the cache converges with the table
	// even if an invalidation is missed.
	productTTL = 5 * time.Minute
)

// RedisClient caches the product set to spare full-table scans on list.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient initializes and returns a new Redis client
func NewRedisClient(addr string) (*RedisClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password by default for local Redis
		DB:       0,  // Default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("Successfully connected to Redis! Ping response: %s", pong)

	return &RedisClient{client: client}, nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() {
	if c.client != nil {
		c.client.Close()
		log.Println("Redis connection closed.")
	}
}

// Products returns the cached product set, or an error on any cache miss
// so the caller falls back to the storage gateway.
func (c *RedisClient) Products(ctx context.Context) ([]models.Product, error) {
	productIDs, err := c.client.SMembers(ctx, allProductIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from Redis: %w", allProductIDsKey, err)
	}
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("no product IDs found in Redis cache set")
	}

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = fmt.Sprintf(productKeyFmt, id)
	}

	results, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to MGET products from Redis: %w", err)
	}

	products := make([]models.Product, 0, len(results))
	for _, res := range results {
		if res == nil {
			// Key expired or was evicted; the DB fallback covers it.
			continue
		}
		productJSON, ok := res.(string)
		if !ok {
			log.Printf("Unexpected type from Redis MGET: %T", res)
			continue
		}
		var p models.Product
		if err := json.Unmarshal([]byte(productJSON), &p); err != nil {
			log.Printf("Failed to unmarshal product JSON from Redis: %v", err)
			continue
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("all products from cache were invalid or missing, forcing DB fetch")
	}

	log.Printf("Successfully retrieved %d products from Redis cache.", len(products))
	return products, nil
}

// Populate replaces the cached product set with the given products.
func (c *RedisClient) Populate(ctx context.Context, products []models.Product) error {
	pipe := c.client.Pipeline()
	allProductIDs := make([]interface{}, 0, len(products))

	for _, p := range products {
		productJSON, err := json.Marshal(p)
		if err != nil {
			log.Printf("Failed to marshal product %s for cache population: %v", p.ID, err)
			continue
		}
		pipe.Set(ctx, fmt.Sprintf(productKeyFmt, p.ID), productJSON, productTTL)
		allProductIDs = append(allProductIDs, p.ID)
	}

	// Rebuild the id set from scratch so it accurately reflects the table.
	pipe.Del(ctx, allProductIDsKey)
	if len(allProductIDs) > 0 {
		pipe.SAdd(ctx, allProductIDsKey, allProductIDs...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for cache population: %w", err)
	}
	log.Printf("Cache populated with %d products.", len(products))
	return nil
}

// Invalidate drops the cached id set after a mutation. Individual product
// keys are left to expire via TTL.
func (c *RedisClient) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, allProductIDsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}
