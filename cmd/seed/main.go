package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/seed"
	"github.com/kendall-kelly/bakery-api/services"
)

func main() {
	force := flag.Bool("force", false, "overwrite an existing catalog")
	file := flag.String("file", "", "YAML catalog to load instead of the built-in one")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	products, err := loadCatalog(*file)
	if err != nil {
		logger.Fatalf("parse catalog: %v", err)
	}

	ctx := context.Background()
	store, err := services.InitStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}

	n, err := seed.Apply(ctx, repository.NewProductRepository(store), products, *force)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	if n == 0 {
		logger.Println("catalog already present, nothing written (use -force to overwrite)")
		return
	}
	logger.Printf("seeded %d products into %s storage", n, cfg.StorageDriver)
}

func loadCatalog(path string) ([]models.Product, error) {
	if path == "" {
		return seed.DefaultProducts()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.ParseProducts(data)
}
