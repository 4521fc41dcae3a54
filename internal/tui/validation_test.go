package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationCase struct {
	name    string
	input   string
	wantErr bool
}

func runValidation(t *testing.T, fn func(string) error, tests []validationCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fn(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateRequired(t *testing.T) {
	runValidation(t, ValidateRequired, []validationCase{
		{name: "valid_string", input: "hello"},
		{name: "empty_string", input: "", wantErr: true},
		{name: "whitespace_only", input: "   ", wantErr: true},
	})
}

func TestValidateDuration(t *testing.T) {
	runValidation(t, ValidateDuration, []validationCase{
		{name: "valid_seconds", input: "30s"},
		{name: "valid_complex", input: "1h30m45s"},
		{name: "padded", input: " 5m "},
		{name: "empty_string", input: ""},
		{name: "missing_unit", input: "30", wantErr: true},
		{name: "invalid_unit", input: "30x", wantErr: true},
	})
}

func TestValidateIntRange(t *testing.T) {
	runValidation(t, ValidateIntRange(0, 10), []validationCase{
		{name: "lower_bound", input: "0"},
		{name: "upper_bound", input: "10"},
		{name: "empty_string", input: ""},
		{name: "below", input: "-1", wantErr: true},
		{name: "above", input: "11", wantErr: true},
		{name: "not_a_number", input: "abc", wantErr: true},
	})

	err := ValidateIntRange(0, 10)("11")
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, ValidateIntRange(0, 10)("x"), ErrInvalidNumber)
}

func TestValidateAPIVersion(t *testing.T) {
	runValidation(t, ValidateAPIVersion, []validationCase{
		{name: "release", input: "7.1"},
		{name: "preview", input: "7.1-preview"},
		{name: "preview_revision", input: "7.1-preview.1"},
		{name: "empty_string", input: ""},
		{name: "major_only", input: "7", wantErr: true},
		{name: "garbage", input: "latest", wantErr: true},
	})
}

func TestValidateProxyURL(t *testing.T) {
	runValidation(t, ValidateProxyURL, []validationCase{
		{name: "empty_string", input: ""},
		{name: "http", input: "http://proxy:8080"},
		{name: "socks5", input: "socks5://127.0.0.1:1080"},
		{name: "ftp", input: "ftp://proxy", wantErr: true},
		{name: "no_host", input: "http://", wantErr: true},
		{name: "bare_host", input: "proxy:8080", wantErr: true},
	})
}

func TestValidateLogLevel(t *testing.T) {
	runValidation(t, ValidateLogLevel, []validationCase{
		{name: "debug", input: "debug"},
		{name: "upper", input: "WARN"},
		{name: "trace", input: "trace", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	})
}

func TestValidateLogFormat(t *testing.T) {
	runValidation(t, ValidateLogFormat, []validationCase{
		{name: "json", input: "json"},
		{name: "pretty", input: "pretty"},
		{name: "text", input: "text", wantErr: true},
	})
}
