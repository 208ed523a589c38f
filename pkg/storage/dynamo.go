package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"gitlab.connectwisedev.com/product-management/models"
	"gitlab.connectwisedev.com/product-management/pkg/config"
)

// DynamoGateway stores products in a DynamoDB table keyed by id.
type DynamoGateway struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoGateway initializes a DynamoDB-backed gateway. When
// cfg.AWSEndpoint is set (LocalStack), requests are routed there with
// static dummy credentials.
func NewDynamoGateway(cfg config.Config) (*DynamoGateway, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSEndpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})

	log.Printf("DynamoDB gateway initialized for table %q (region %s).", cfg.TableName, cfg.AWSRegion)
	return &DynamoGateway{client: client, table: cfg.TableName}, nil
}

func (g *DynamoGateway) Put(ctx context.Context, p models.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", p.ID, err)
	}
	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(g.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put product %s: %w", p.ID, err)
	}
	return nil
}

func (g *DynamoGateway) Get(ctx context.Context, id string) (models.Product, error) {
	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.table),
		Key:       productKey(id),
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if out.Item == nil {
		return models.Product{}, ErrNotFound
	}
	var p models.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return models.Product{}, fmt.Errorf("failed to unmarshal product %s: %w", id, err)
	}
	return p, nil
}

func (g *DynamoGateway) Scan(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := g.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(g.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan products table: %w", err)
		}
		var page []models.Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scanned products: %w", err)
		}
		products = append(products, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return products, nil
}

func (g *DynamoGateway) Update(ctx context.Context, p models.Product) error {
	// name and date are reserved words in DynamoDB expressions.
	_, err := g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(g.table),
		Key:                 productKey(p.ID),
		UpdateExpression:    aws.String("SET #n = :name, description = :description, #d = :date"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
			"#d": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":        &types.AttributeValueMemberS{Value: p.Name},
			":description": &types.AttributeValueMemberS{Value: p.Description},
			":date":        &types.AttributeValueMemberS{Value: p.Date},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	return nil
}

func (g *DynamoGateway) Delete(ctx context.Context, id string) error {
	_, err := g.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(g.table),
		Key:       productKey(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func productKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
