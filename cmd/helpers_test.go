package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/store"
	"github.com/sells-group/bizhealth/internal/validate"
)

const scenarioYAML = `totalCustomers: 3200
averageProjectValue: 4500
contactFrequencyPerYear: 1
hasReactivationProcess: false
googleStarRating: 4.2
reviewResponseRate: 22
sharesReviewsOnSocialMedia: false
dailyCalls: 50
callAnswerRate: 68
hasAfterHoursHandling: false
availableChannels: [phone, email]
averageResponseTimeHours: 4
monthlyWebsiteVisitors: 5000
conversionRate: 2.8
isMobileOptimized: false
hasAutomatedFollowUp: false
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestService(t *testing.T) (*analysis.Service, store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "cmd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v, err := validate.New()
	require.NoError(t, err)
	return analysis.New(st, v), st
}

// execute runs the root command against a fresh SQLite database and returns
// stdout. The database path is shared by calls within one test.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BIZHEALTH_STORE_DATABASE_URL", dbPath)
	t.Setenv("BIZHEALTH_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
