package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/erpindex/internal/ingest"
	"github.com/specialistvlad/erpindex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())
	assert.Equal(t, ingest.DefaultOptions(), s.IngestOptions())
	assert.Equal(t, 9, s.Query.DefaultThreshold)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "text", s.Log.Format)
}

func TestLoadFile_AppliesBlocks(t *testing.T) {
	ctx, _ := testutil.Context(t)
	path := testutil.WriteFile(t, "erp.hcl", `
source {
  path           = "${env.DATA_DIR}/students.tsv"
  delimiter      = "\t"
  list_separator = "|"
  skip_header    = false
}

query {
  default_threshold = 7
}

log {
  level = lower(trimspace("  DEBUG "))
}
`)
	env := Environment{"DATA_DIR": "/srv/erp"}

	s, err := LoadFile(ctx, path, Defaults(), env)
	require.NoError(t, err)

	want := Defaults()
	want.Source = SourceSettings{
		Path:          "/srv/erp/students.tsv",
		Delimiter:     "\t",
		ListSeparator: "|",
		PairSeparator: ":",
		SkipHeader:    false,
	}
	want.Query.DefaultThreshold = 7
	want.Log.Level = "debug"
	assert.Equal(t, want, s)
	require.NoError(t, s.Validate())
	assert.Equal(t, '\t', s.IngestOptions().Delimiter)
}

func TestLoadFile_EmptyFileKeepsBase(t *testing.T) {
	ctx, _ := testutil.Context(t)
	path := testutil.WriteFile(t, "erp.hcl", "")

	base := Defaults()
	base.Source.Path = "from-base.csv"
	s, err := LoadFile(ctx, path, base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, s)
}

func TestLoadFile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", "source {\n  path = \n", "failed to parse settings file"},
		{"unknown block", "server {\n}\n", "failed to decode settings file"},
		{"unknown attribute", "query {\n  limit = 3\n}\n", "failed to decode settings file"},
		{"wrong type", "query {\n  default_threshold = \"high\"\n}\n", "failed to decode settings file"},
		{"missing env var", "source {\n  path = env.NOPE\n}\n", "failed to decode settings file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			path := testutil.WriteFile(t, "erp.hcl", tc.content)

			_, err := LoadFile(ctx, path, Defaults(), Environment{"HOME": "/root"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, err := LoadFile(ctx, filepath.Join(t.TempDir(), "absent.hcl"), Defaults(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvironment_ProcessWinsOverDotEnv(t *testing.T) {
	dotenv := testutil.WriteFile(t, ".env", "ERP_SOURCE=from-dotenv.csv\nERP_LOG_LEVEL=debug\n")

	env, err := LoadEnvironment(dotenv, []string{"ERP_LOG_LEVEL=WARN", "MALFORMED", "OTHER=a=b"})
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.csv", env[EnvSource])
	assert.Equal(t, "WARN", env[EnvLogLevel])
	assert.Equal(t, "a=b", env["OTHER"])
	assert.NotContains(t, env, "MALFORMED")
}

func TestLoadEnvironment_MissingDotEnvIsFine(t *testing.T) {
	env, err := LoadEnvironment(filepath.Join(t.TempDir(), ".env"), []string{"A=1"})
	require.NoError(t, err)
	assert.Equal(t, Environment{"A": "1"}, env)
}

func TestLoadEnvironment_UnreadableDotEnv(t *testing.T) {
	// A directory cannot be read as a file.
	_, err := LoadEnvironment(t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}

func TestEnvironment_Apply(t *testing.T) {
	s := Defaults()
	s.Source.Path = "from-file.csv"

	Environment{
		EnvSource:    "from-env.csv",
		EnvLogLevel:  "ERROR",
		EnvLogFormat: "",
	}.Apply(&s)

	assert.Equal(t, "from-env.csv", s.Source.Path)
	assert.Equal(t, "error", s.Log.Level)
	assert.Equal(t, "text", s.Log.Format, "empty values do not override")
}

func TestValidate_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"log level", func(s *Settings) { s.Log.Level = "trace" }, "settings.log.level must be one of [debug info warn error]"},
		{"log format", func(s *Settings) { s.Log.Format = "yaml" }, "settings.log.format must be one of [text json]"},
		{"threshold high", func(s *Settings) { s.Query.DefaultThreshold = 11 }, "settings.query.defaultthreshold must be between 0 and 10"},
		{"threshold low", func(s *Settings) { s.Query.DefaultThreshold = -1 }, "settings.query.defaultthreshold must be between 0 and 10"},
		{"long delimiter", func(s *Settings) { s.Source.Delimiter = ";;" }, "settings.source.delimiter must be a single character"},
		{"empty separator", func(s *Settings) { s.Source.PairSeparator = "" }, "settings.source.pairseparator must be a single character"},
		{"duplicate separators", func(s *Settings) { s.Source.ListSeparator = "," }, "delimiter and list separator must differ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Defaults()
			tc.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_ReportsAllFields(t *testing.T) {
	s := Defaults()
	s.Log.Level = "loud"
	s.Log.Format = "xml"

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings.log.level")
	assert.Contains(t, err.Error(), "settings.log.format")
}
