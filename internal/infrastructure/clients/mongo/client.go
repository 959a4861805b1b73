package mongo

import (
	"context"
	"fmt"

	"github.com/zatekoja/projectapi-e2e/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps the datastore connection read by the oracle
type Client struct {
	client *mongo.Client
	cfg    config.MongoConfig
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(ctx context.Context, cfg *config.MongoConfig) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("projectapi-e2e"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{client: client, cfg: *cfg}, nil
}

// Client returns the underlying driver client
func (c *Client) Client() *mongo.Client {
	return c.client
}

// Database returns the configured database handle
func (c *Client) Database() *mongo.Database {
	return c.client.Database(c.cfg.Database)
}

// Projects returns the collection holding projects and templates
func (c *Client) Projects() *mongo.Collection {
	return c.Database().Collection(c.cfg.ProjectCollection)
}

// Reports returns the report collection
func (c *Client) Reports() *mongo.Collection {
	return c.Database().Collection(c.cfg.ReportCollection)
}

// Ping verifies the connection to MongoDB
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
