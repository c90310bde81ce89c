package client

import (
	"context"
	"fmt"
	"time"

	"classbook/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	disconnectTimeout  = 5 * time.Second
	defaultMaxPoolSize = 50
)

type MongoOptions struct {
	URI            string
	AppName        string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

func (o MongoOptions) clientOptions() *options.ClientOptions {
	pool := o.MaxPoolSize
	if pool == 0 {
		pool = defaultMaxPoolSize
	}
	opts := options.Client().
		ApplyURI(o.URI).
		SetMaxPoolSize(pool).
		SetServerSelectionTimeout(o.ConnectTimeout)
	if o.AppName != "" {
		opts.SetAppName(o.AppName)
	}
	return opts
}

// ConnectMongo dials and pings the primary. The returned client is ready for use.
func ConnectMongo(ctx context.Context, o MongoOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, o.ConnectTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, o.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return mc, nil
}

// Client holds the shared external connections of a process.
type Client struct {
	Mongo *mongo.Client
	log   *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

// SetMongo connects or exits the process. Only call during startup.
func (c *Client) SetMongo(log *logger.Logger, o MongoOptions) {
	mc, err := ConnectMongo(context.Background(), o)
	if err != nil {
		log.Fatal("MongoDB unavailable", "error", err)
	}
	log.Info("Connected to MongoDB", "app_name", o.AppName)
	c.Mongo = mc
	c.log = log
}

// Close disconnects Mongo if connected. Safe to call more than once.
func (c *Client) Close() error {
	if c.Mongo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	mc := c.Mongo
	c.Mongo = nil
	if err := mc.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	if c.log != nil {
		c.log.Info("Disconnected from MongoDB")
	}
	return nil
}
