//go:build integration

// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database. Tests built with the "integration" tag still
// skip at runtime unless a database URL is configured in the environment.
package testdb

import "os"

// databaseURLEnvVars lists the environment variables consulted, in order,
// for the integration test database connection string.
var databaseURLEnvVars = []string{"DATABASE_URL", "DAILINGO_TEST_DB_URL"}

// DatabaseURL returns the configured integration test database URL, or the
// empty string when none is set.
func DatabaseURL() string {
	for _, envVar := range databaseURLEnvVars {
		if url := os.Getenv(envVar); url != "" {
			return url
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether database integration tests should
// be skipped because no database URL is configured.
func ShouldSkipDatabaseTest() bool {
	return DatabaseURL() == ""
}
