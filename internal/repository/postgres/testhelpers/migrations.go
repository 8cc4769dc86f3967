package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations runs every *.up.sql file of dir in name order
func ApplyMigrations(db *sql.DB, dir string) error {
	return runMigrations(db, dir, ".up.sql", false)
}

// RollbackMigrations runs every *.down.sql file of dir in reverse name order
func RollbackMigrations(db *sql.DB, dir string) error {
	return runMigrations(db, dir, ".down.sql", true)
}

func runMigrations(db *sql.DB, dir, suffix string, reverse bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	} else {
		sort.Strings(files)
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}
