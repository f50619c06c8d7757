package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations applies all .up.sql files from migrationsPath in name order
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	return runMigrations(db, migrationsPath, ".up.sql", false)
}

// RollbackMigrations applies all .down.sql files in reverse name order
func RollbackMigrations(db *sql.DB, migrationsPath string) error {
	return runMigrations(db, migrationsPath, ".down.sql", true)
}

func runMigrations(db *sql.DB, migrationsPath, suffix string, reverse bool) error {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(migrationsPath, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
