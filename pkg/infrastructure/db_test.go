package infrastructure

import (
	"strings"
	"testing"
)

func TestJobsDSN(t *testing.T) {
	t.Setenv("JOBS_DATABASE_URL", "postgres://u:p@somewhere:5432/custom")
	if got := jobsDSN(); got != "postgres://u:p@somewhere:5432/custom" {
		t.Errorf("env override ignored: %q", got)
	}

	t.Setenv("JOBS_DATABASE_URL", "")
	if got := jobsDSN(); got != defaultJobsDSN {
		t.Errorf("got %q, want the default DSN", got)
	}
	if !strings.Contains(defaultJobsDSN, "optimize_jobs") || !strings.Contains(defaultJobsDSN, "optimize-db") {
		t.Errorf("default DSN should name this service's store: %q", defaultJobsDSN)
	}
}
