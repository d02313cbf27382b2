package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rash-sh/relprep/internal/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name: "version after other fields",
			content: `[package]
name = "rash"
version = "1.2.3"
edition = "2021"
`,
			want: "1.2.3",
		},
		{
			name: "first match wins over nested tables",
			content: `[package]
name = "rash"
version = "2.0.0"

[dependencies.serde]
version = "1.0.200"
`,
			want: "2.0.0",
		},
		{
			name: "pre-release suffix preserved verbatim",
			content: `version = "0.5.0-rc.1+build.7"
`,
			want: "0.5.0-rc.1+build.7",
		},
		{
			name: "whitespace around equals tolerated",
			content: `version   =   "3.1.4"
`,
			want: "3.1.4",
		},
		{
			name: "indented version line matches",
			content: `[package]
  version = "9.9.9"
`,
			want: "9.9.9",
		},
		{
			name: "no version line",
			content: `[package]
name = "rash"
edition = "2021"
`,
			wantErr: errors.ErrNoVersionLine,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: errors.ErrNoVersionLine,
		},
		{
			name: "single-quoted value does not match",
			content: `version = '1.2.3'
`,
			wantErr: errors.ErrNoVersionLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(writeManifest(t, tt.content))
			got, err := m.ExtractVersion()

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVersion_MissingFile(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "nope.toml"))
	_, err := m.ExtractVersion()

	require.Error(t, err)
	var manifestErr *errors.ManifestError
	assert.ErrorAs(t, err, &manifestErr)
}

func TestSetVersion(t *testing.T) {
	content := `[package]
name = "rash"
version = "1.2.3"

[dependencies.serde]
version = "1.0.200"
`
	path := writeManifest(t, content)
	m := New(path)

	require.NoError(t, m.SetVersion("1.3.0"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[package]
name = "rash"
version = "1.3.0"

[dependencies.serde]
version = "1.0.200"
`, string(data), "only the first version line should change")

	got, err := m.ExtractVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", got)
}

func TestSetVersion_InvalidVersion(t *testing.T) {
	content := `version = "1.2.3"
`
	path := writeManifest(t, content)
	m := New(path)

	err := m.SetVersion("not-a-version")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidVersion)

	// The manifest must be untouched after a rejected version.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data))
}

func TestSetVersion_NoVersionLine(t *testing.T) {
	m := New(writeManifest(t, "name = \"rash\"\n"))

	err := m.SetVersion("1.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoVersionLine)
}

func TestLoad(t *testing.T) {
	m := New(writeManifest(t, `[package]
name = "rash"
version = "1.2.3"
edition = "2021"
`))

	meta, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "rash", meta.Package.Name)
	assert.Equal(t, "1.2.3", meta.Package.Version)
	assert.Equal(t, "2021", meta.Package.Edition)
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"1.2.3", true},
		{"0.0.1", true},
		{"1.2.3-rc.1", true},
		{"1.2.3+build.5", true},
		{"v1.2.3", false},
		{"1.2", false},
		{"", false},
		{"release", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := ValidateVersion(tt.version)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidVersion)
			}
		})
	}
}
