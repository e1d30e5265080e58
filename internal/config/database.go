package config

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig(logger *zap.Logger) *MongoDBConfig {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		logger.Fatal("MONGO_URI not set")
	}
	database := os.Getenv("MONGO_DB")
	if database == "" {
		database = "gestion_db"
	}
	return &MongoDBConfig{URI: uri, Database: database}
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig, logger *zap.Logger) (*MongoDBClient, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	logger.Info("Connected to MongoDB", zap.String("database", config.Database))

	lc.Append(fx.Hook{
		OnStop: func(stopCtx context.Context) error {
			logger.Info("Closing MongoDB connection ...")
			return client.Disconnect(stopCtx)
		},
	})
	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

func (c *MongoDBClient) GetCollection(collectionName string) *mongo.Collection {
	return c.Database.Collection(collectionName)
}
