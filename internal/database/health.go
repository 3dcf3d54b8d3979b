package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Pinger reports whether a store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// MongoPinger pings the primary of a MongoDB deployment.
func MongoPinger(client *mongo.Client) Pinger {
	return PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
}

// GORMPinger pings the database behind a GORM handle.
func GORMPinger(db *gorm.DB) Pinger {
	return PingFunc(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}
