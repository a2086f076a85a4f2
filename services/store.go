package services

import (
	"context"
	"fmt"
	"log"

	appConfig "github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/storage"
)

var storeInstance storage.Store

// InitStore opens the collection store selected by STORAGE_DRIVER
func InitStore(ctx context.Context, cfg *appConfig.Config) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.StorageDriver {
	case appConfig.StorageDatabase:
		if err := appConfig.ConnectDatabase(cfg.DatabaseURL, cfg.LogLevel); err != nil {
			return nil, err
		}
		store, err = storage.NewDatabaseStore(appConfig.GetDB())
	case appConfig.StorageS3:
		s3Service := GetS3Service()
		if s3Service == nil {
			if s3Service, err = InitS3Service(ctx, cfg); err != nil {
				return nil, err
			}
		}
		store = storage.NewObjectStore(s3Service, cfg.StoragePrefix)
	case appConfig.StorageMemory:
		log.Printf("Using in-memory storage; data is lost on restart")
		store = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StorageDriver, err)
	}

	storeInstance = store
	return store, nil
}

// GetStore returns the initialized collection store
func GetStore() storage.Store {
	return storeInstance
}

// SetStore sets the store instance (primarily for testing)
func SetStore(store storage.Store) {
	storeInstance = store
}
