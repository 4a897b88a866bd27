// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// PostgresDSN returns TEST_DATABASE_URL or skips the test when it is unset.
//
// Run Postgres tests with: TEST_DATABASE_URL=postgres://... go test ./...
func PostgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping Postgres test (set TEST_DATABASE_URL to run)")
	}
	return dsn
}

// SkipAITests skips the test if RUN_AI_TESTS is not set.
// Use this for tests that call a live LLM API.
//
// Run AI tests with: RUN_AI_TESTS=1 ANTHROPIC_API_KEY=... go test ./...
func SkipAITests(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_AI_TESTS") == "" {
		t.Skip("Skipping AI test (set RUN_AI_TESTS=1 to run)")
	}
}
