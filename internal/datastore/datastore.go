package datastore

import (
	"context"
	"fmt"

	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/ansa-dev/ansa/internal/kv/bbolt"
	"github.com/ansa-dev/ansa/internal/kv/dynamo"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
)

// NewStore creates a new Store and initializes the database.
func NewStore(ctx context.Context) (kv.Storer, error) {
	storeType := viper.GetString("store.type")
	switch storeType {
	case "bbolt":
		return bbolt.NewStore()
	case "dynamodb":
		table := viper.GetString("store.table")
		if table == "" {
			return nil, fmt.Errorf("store.table must be set when using dynamodb")
		}

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return dynamo.NewStore(cfg, table, viper.GetString("store.phone_index")), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", storeType)
	}
}

// NewTestStore creates a new Store for testing purposes.
func NewTestStore(dbPath string) (kv.Storer, error) {
	return bbolt.NewTestStore(dbPath)
}
