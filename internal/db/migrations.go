package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/trackora/trackora/migrations"
	"gorm.io/gorm"
)

// Migrations are forward-only: numbered SQL files applied in order, each
// inside its own transaction, with the applied set tracked in
// schema_migrations.

var migrationNamePattern = regexp.MustCompile(`^(\d+)_.+\.sql$`)

type migrationScript struct {
	version string
	name    string
	sql     string
}

func migrateSchema(database *gorm.DB) error {
	const trackingTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(trackingTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	scripts, err := readMigrationScripts()
	if err != nil {
		return err
	}

	applied, err := appliedMigrationVersions(database)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, done := applied[script.version]; done {
			continue
		}
		if err := runMigrationScript(database, script); err != nil {
			return err
		}
	}
	return nil
}

func readMigrationScripts() ([]migrationScript, error) {
	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		matches := migrationNamePattern.FindStringSubmatch(name)
		if entry.IsDir() || matches == nil {
			continue
		}

		version := matches[1]
		if previous, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration version %s defined by both %s and %s", version, previous, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(migrations.Files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		scripts = append(scripts, migrationScript{version: version, name: name, sql: string(content)})
	}

	// Zero-padded numeric prefixes make lexical order the apply order.
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].name < scripts[j].name
	})
	return scripts, nil
}

func appliedMigrationVersions(database *gorm.DB) (map[string]struct{}, error) {
	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}
	return applied, nil
}

func runMigrationScript(database *gorm.DB, script migrationScript) error {
	return database.Transaction(func(tx *gorm.DB) error {
		ran := 0
		for _, statement := range strings.Split(script.sql, ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", script.name, err)
			}
			ran++
		}
		if ran == 0 {
			return errors.New("migration " + script.name + " has no statements")
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			script.version, script.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}
