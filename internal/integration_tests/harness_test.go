package integration_tests

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/erpindex/internal/app"
	"github.com/specialistvlad/erpindex/internal/cli"
	"github.com/specialistvlad/erpindex/internal/testutil"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcome of one application run.
type HarnessResult struct {
	Out  string
	Logs string
	Err  error
	Root string
}

// runERP writes files under a temporary root, parses args as the command
// line would (relative paths resolve against the root) and runs the app
// with input as stdin.
func runERP(t *testing.T, files map[string]string, input string, args ...string) *HarnessResult {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	resolved := []string{"--env-file", filepath.Join(root, ".env"), "--log-level", "debug"}
	for _, a := range args {
		if strings.HasPrefix(a, "@") {
			a = filepath.Join(root, a[1:])
		}
		resolved = append(resolved, a)
	}

	out := &bytes.Buffer{}
	cfg, exit, err := cli.Parse(resolved, nil, out)
	if err != nil || exit {
		return &HarnessResult{Out: out.String(), Err: err, Root: root}
	}
	require.NotNil(t, cfg)

	logs := &testutil.SafeBuffer{}
	err = app.NewApp(out, logs, cfg).Run(context.Background(), strings.NewReader(input))

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("--- Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return &HarnessResult{Out: out.String(), Logs: logs.String(), Err: err, Root: root}
}

const header = "Institute,Name,RollNumber,Branch,StartingYear,CurrentCourses,PastCoursesGrades\n"
