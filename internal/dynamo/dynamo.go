package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
)

// BatchLimit is the maximum number of keys accepted by one BatchWriteItem call.
const BatchLimit = 25

// API is the subset of the DynamoDB client used by the Store.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// Config contains the settings for the catalog table.
type Config struct {
	TableName string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// Store represents the type to interact with the catalog table.
type Store struct {
	api    API
	table  string
	logger tools.Logger
}

// New creates a new Store backed by a DynamoDB client built from cfg.
func New(cfg aws.Config, c Config, logger tools.Logger) (*Store, error) {
	if c.TableName == "" {
		return nil, errors.New("dynamo: table name is required")
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
	return NewWithAPI(client, c.TableName, logger), nil
}

// NewWithAPI creates a Store over an existing client.
func NewWithAPI(api API, table string, logger tools.Logger) *Store {
	return &Store{api: api, table: table, logger: logger}
}
