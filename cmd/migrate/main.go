package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

type migrationFile struct {
	version int
	name    string
	path    string
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if err := ensureSchemaMigrations(db); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	kind := strings.ToLower(*mode)
	if kind != "up" && kind != "down" {
		log.Fatalf("unknown mode: %s", *mode)
	}

	files, err := loadMigrationFiles(migrationsDir, kind)
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	if kind == "up" {
		err = applyUp(db, files)
	} else {
		err = applyDown(db, files)
	}
	if err != nil {
		log.Fatalf("migration %s failed: %v", kind, err)
	}
	log.Printf("Migration %s completed successfully", kind)
}

func ensureSchemaMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func loadMigrationFiles(dir, kind string) ([]migrationFile, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("*.%s.sql", kind))
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, path := range paths {
		base := filepath.Base(path)
		parts := strings.SplitN(base, "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed migration filename: %s", base)
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %s: %w", base, err)
		}
		name := strings.TrimSuffix(parts[1], fmt.Sprintf(".%s.sql", kind))
		files = append(files, migrationFile{version: version, name: name, path: path})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

func applyUp(db *sql.DB, files []migrationFile) error {
	for _, f := range files {
		var applied bool
		if err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f.version,
		).Scan(&applied); err != nil {
			return err
		}
		if applied {
			continue
		}

		sqlBytes, err := os.ReadFile(f.path)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("migration %d (%s): %w", f.version, f.name, err)
		}
		if _, err := db.Exec(
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, f.version, f.name,
		); err != nil {
			return err
		}
		log.Printf("applied %d_%s", f.version, f.name)
	}
	return nil
}

func applyDown(db *sql.DB, files []migrationFile) error {
	// Roll back only the most recent applied migration.
	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return err
	}
	if version == 0 {
		log.Println("nothing to roll back")
		return nil
	}

	for _, f := range files {
		if f.version != version {
			continue
		}
		sqlBytes, err := os.ReadFile(f.path)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("rollback %d (%s): %w", f.version, f.name, err)
		}
		if _, err := db.Exec(`DELETE FROM schema_migrations WHERE version = $1`, f.version); err != nil {
			return err
		}
		log.Printf("rolled back %d_%s", f.version, f.name)
		return nil
	}
	return fmt.Errorf("no down migration found for version %d", version)
}
