package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/config"
	"savings-route-service/internal/platform/db"
	"strings"
)

func main() {
	config.Load()

	manifestPath := flag.String("manifest", config.Get("SEED_MANIFEST", "data/instances.yaml"), "YAML manifest of instances to import")
	schemaOnly := flag.Bool("schema-only", false, "create the schema and skip the import")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, dialect, err := db.OpenURL(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeed(conn, dialect, *manifestPath, *schemaOnly)
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, manifestPath string, schemaOnly bool) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return
	}

	log.Printf("Importing instances manifest=%s", manifestPath)
	m, err := config.LoadManifest(manifestPath)
	if err != nil {
		log.Fatalf("reading manifest failed: %v", err)
	}
	n, err := repositories.SeedFromManifest(context.Background(), repositories.NewSQLInstanceRepository(conn, dialect), m)
	if err != nil {
		log.Fatalf("import failed after %d instances: %v", n, err)
	}
	log.Printf("Import complete. instances=%d", n)
}
