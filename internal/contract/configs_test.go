package contract

import (
	"testing"

	"github.com/cosmodesk/taskpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{}

	err := ProcessAndValidate(cfg, input)
	require.NoError(t, err)

	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.Equal(t, schema.TextMode, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.Backend)
	assert.False(t, cfg.UseColors)
}

func TestProcessAndValidate_Positionals(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		ProjectStr:  "  website-redesign  ",
		AssigneeStr: "user-42",
		ItemIDStr:   "sub-1",
	}

	err := ProcessAndValidate(cfg, input)
	require.NoError(t, err)

	assert.Equal(t, "website-redesign", cfg.Project, "project should be trimmed")
	assert.Equal(t, "user-42", cfg.Assignee)
	assert.Equal(t, "sub-1", cfg.ItemID)
}

func TestProcessAndValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   ConfigRawInput
		wantErr string
	}{
		{
			"limit above max",
			ConfigRawInput{Limit: MaxResultLimit + 1},
			"exceeds maximum",
		},
		{
			"precision above max",
			ConfigRawInput{Precision: 5},
			"precision",
		},
		{
			"bad output mode",
			ConfigRawInput{Output: "xml"},
			"invalid output mode",
		},
		{
			"parquet without output file",
			ConfigRawInput{Output: "parquet"},
			"requires --output-file",
		},
		{
			"bad backend",
			ConfigRawInput{Backend: "oracle"},
			"invalid backend",
		},
		{
			"mysql without connection string",
			ConfigRawInput{Backend: "mysql"},
			"db-connect is required",
		},
		{
			"bad color value",
			ConfigRawInput{Color: "perhaps"},
			"invalid color value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, &tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/taskpulse?parseTime=true", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/taskpulse", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 user=tp dbname=taskpulse sslmode=disable", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost user=tp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Project: "alpha", ResultLimit: 10, Backend: schema.SQLiteBackend}
	clone := cfg.Clone()

	clone.Project = "beta"
	assert.Equal(t, "alpha", cfg.Project, "clone should not mutate the original")
}
