package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a connection and returns the client. Caller should call
// client.Disconnect(ctx).
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the domain invariants rely on:
// attorneys.email (emails are stored lowercased) and cases.caseNumber
// (unique across the whole store, not per attorney). Idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	attorneys := db.Collection("attorneys")
	if _, err := attorneys.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("attorneys email index: %w", err)
	}

	cases := db.Collection("cases")
	if _, err := cases.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "caseNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("cases caseNumber index: %w", err)
	}

	// ownership scans hit these on every list/search
	for _, col := range []string{"cases", "clients"} {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "attorney", Value: 1}},
		}); err != nil {
			return fmt.Errorf("%s attorney index: %w", col, err)
		}
	}
	return nil
}
