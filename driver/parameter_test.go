package driver

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

var testFormat = Format{
	Identifier: "test",
	Name:       "Test",
	Extensions: []string{".fgb"},
	Parameters: []Parameter{
		{Identifier: "path", Type: TypeString, Conditions: []Condition{NotEmpty(), HasExtension(".fgb")}},
		{Identifier: "database", Type: TypeInt, Default: 0, Conditions: []Condition{Between(0, 15)}},
		{Identifier: "index", Type: TypeBool, Default: true},
		{Identifier: "timeout", Type: TypeDuration, Optional: true, Conditions: []Condition{Positive()}},
		{Identifier: "ratio", Type: TypeFloat, Optional: true},
	},
}

func TestFormat_Validate(t *testing.T) {
	got, err := testFormat.Validate(map[string]any{
		"path":     "data.FGB",
		"database": "3",
		"index":    "false",
		"timeout":  "2s",
		"ratio":    1,
	})
	require.NoError(t, err)
	require.Equal(t, "data.FGB", got.String("path"))
	require.Equal(t, 3, got.Int("database"))
	require.False(t, got.Bool("index"))
	require.Equal(t, 2*time.Second, got.Duration("timeout"))
	require.Equal(t, 1.0, got.Float("ratio"))
}

func TestFormat_ValidateDefaults(t *testing.T) {
	got, err := testFormat.Validate(map[string]any{"path": "a.fgb"})
	require.NoError(t, err)
	require.Equal(t, 0, got.Int("database"))
	require.True(t, got.Bool("index"))
	_, ok := got["timeout"]
	require.False(t, ok, "optional parameters without a default stay unset")
}

func TestFormat_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"MissingRequired", map[string]any{}},
		{"Unknown", map[string]any{"path": "a.fgb", "bogus": 1}},
		{"WrongType", map[string]any{"path": 12}},
		{"BadInt", map[string]any{"path": "a.fgb", "database": "x"}},
		{"OutOfRange", map[string]any{"path": "a.fgb", "database": 16}},
		{"Empty", map[string]any{"path": " "}},
		{"Extension", map[string]any{"path": "a.json"}},
		{"NegativeDuration", map[string]any{"path": "a.fgb", "timeout": "-1s"}},
		{"FractionalInt", map[string]any{"path": "a.fgb", "database": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testFormat.Validate(tt.values)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestFormat_MatchesExtension(t *testing.T) {
	require.True(t, testFormat.MatchesExtension("/tmp/x.fgb"))
	require.True(t, testFormat.MatchesExtension("X.FGB"))
	require.False(t, testFormat.MatchesExtension("x.geojson"))
	require.False(t, testFormat.MatchesExtension("fgb"))
}

func TestConnectionError(t *testing.T) {
	err := NewConnectionError(Path("abc", 0, 2), ErrPathNotFound)
	require.True(t, errors.Is(err, ErrConnection))
	require.True(t, errors.Is(err, ErrPathNotFound))
	require.Contains(t, err.Error(), "abc[0 2]")

	var ce *ConnectionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "abc[0 2]", ce.Path)

	err = NotFound("missing")
	require.True(t, errors.Is(err, ErrIdentifierNotFound))
	require.False(t, errors.Is(err, ErrPathNotFound))
	require.Equal(t, "missing", Path("missing"))
}
