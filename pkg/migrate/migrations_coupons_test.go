package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_catalog_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_specs",
		"CREATE TABLE IF NOT EXISTS side_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_specs_default",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCouponsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_coupons_table.sql")

	checks := []string{
		"CREATE TYPE coupon_type AS ENUM ('fixed', 'percentage')",
		"CREATE TABLE IF NOT EXISTS coupons",
		"expiry_date DATE NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_coupons_code",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
