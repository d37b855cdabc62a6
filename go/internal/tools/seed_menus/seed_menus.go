package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/orderalone/go/internal/dbconfig"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// seedMenu mirrors one entry of the menus YAML file
type seedMenu struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Level       int               `yaml:"level"`
	Data        []models.Category `yaml:"data"`
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	// 1) Load the menu file
	path := getEnv("MENUS_FILE", "go/internal/assets/menus.yaml")
	menus, err := loadMenus(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load menus: %v\n", err)
		os.Exit(1)
	}

	// 2) Upload images when a bucket is configured
	if bucket := os.Getenv("IMAGE_BUCKET"); bucket != "" {
		uploader, err := newS3Uploader(ctx, bucket)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configure image storage: %v\n", err)
			os.Exit(1)
		}
		uploaded, err := publishImages(ctx, menus, filepath.Dir(path), uploader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "upload images: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded %d images to %s\n", uploaded, bucket)
	}

	// 3) Connect using shared dbconfig
	cfg, err := dbconfig.FromEnv("orderalone-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid database config: %v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.PoolDSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 4) Upsert by name and count
	var inserted, updated, errs int
	for _, m := range menus {
		data, err := json.Marshal(m.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode menu %s: %v\n", m.Name, err)
			errs++
			continue
		}

		var wasInserted bool
		err = pool.QueryRow(ctx, `
            INSERT INTO menus (id, name, description, level, data)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (name) DO UPDATE
              SET description = EXCLUDED.description,
                  level = EXCLUDED.level,
                  data = EXCLUDED.data
            RETURNING (xmax = 0)
        `, uuid.New(), m.Name, m.Description, m.Level, data).Scan(&wasInserted)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error upserting menu %s: %v\n", m.Name, err)
			errs++
			continue
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	// 5) Print summary
	fmt.Printf(
		"Menus seed complete: %d total, %d inserted, %d updated, %d errors\n",
		len(menus), inserted, updated, errs,
	)
}

func loadMenus(path string) ([]seedMenu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var menus []seedMenu
	if err := yaml.Unmarshal(raw, &menus); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range menus {
		if menus[i].Name == "" {
			return nil, fmt.Errorf("menu %d has no name", i+1)
		}
		if menus[i].Level < 1 {
			menus[i].Level = 1
		}
		if menus[i].Data == nil {
			menus[i].Data = []models.Category{}
		}
	}
	return menus, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
