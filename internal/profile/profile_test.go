package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltinProfile(t *testing.T) {
	r := NewRegistry()

	got, err := r.Resolve("readonly", nil)
	require.NoError(t, err)
	assert.False(t, got.All)
	assert.Equal(t, []string{"Read", "Glob", "Grep"}, got.Names)
}

func TestResolveAllSentinel(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		profile string
		tools   []string
	}{
		{"profile all", "all", nil},
		{"profile all uppercase", "ALL", nil},
		{"all in tools", "", []string{"all"}},
		{"all mixed with names", "readonly", []string{"Write", "all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.profile, tt.tools)
			require.NoError(t, err)
			assert.True(t, got.All)
			assert.Empty(t, got.Names)
		})
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("nonsense", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonsense")
	assert.Contains(t, err.Error(), "readonly", "error should list available profiles")
}

func TestResolveExpandsProfileNamesInTools(t *testing.T) {
	r := NewRegistry()

	got, err := r.Resolve("", []string{"readonly", "WebSearch"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Read", "Glob", "Grep", "WebSearch"}, got.Names)
}

func TestResolveDeduplicates(t *testing.T) {
	r := NewRegistry()

	got, err := r.Resolve("readonly", []string{"Read", "Bash", "Bash"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Read", "Glob", "Grep", "Bash"}, got.Names)
}

func TestLoadFileMergesAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	doc := `profiles:
  docs:
    - Read
    - WebSearch
  readonly:
    - Read
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	docs, ok := r.Get("docs")
	require.True(t, ok)
	assert.Equal(t, []string{"Read", "WebSearch"}, docs)

	// File entry overrides the built-in.
	ro, _ := r.Get("readonly")
	assert.Equal(t, []string{"Read"}, ro)
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadFileRejectsReservedName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  all:\n    - Read\n"), 0644))

	r := NewRegistry()
	assert.Error(t, r.LoadFile(path))
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: [not a map"), 0644))

	r := NewRegistry()
	assert.Error(t, r.LoadFile(path))
}

func TestNamesIncludesSentinel(t *testing.T) {
	r := NewRegistry()
	names := r.Names()
	assert.Contains(t, names, "all")
	assert.Contains(t, names, "build")
	assert.IsIncreasing(t, names)
}
