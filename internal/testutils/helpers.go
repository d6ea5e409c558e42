package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/chembot/pkg/domain"
)

// SetupTestRepo initializes a Loam repository in a fresh temp dir and returns
// its absolute path alongside the repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "failed to resolve temp dir")

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "failed to init loam repo")

	return dir, repo
}

// WriteDocument writes raw content to name under dir, creating parent folders.
// Use it for documents whose front matter is deliberately malformed.
func WriteDocument(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type frontMatter struct {
	Year     int    `yaml:"year"`
	Session  string `yaml:"session"`
	Paper    int    `yaml:"paper"`
	Variant  int    `yaml:"variant"`
	Question int    `yaml:"question"`
	Subpart  string `yaml:"subpart,omitempty"`
}

// SeedSolution writes a solution document for sel to name under dir, with the
// selection encoded as YAML front matter the way library authors write it.
func SeedSolution(t *testing.T, dir, name string, sel domain.PaperSelection, content string) string {
	t.Helper()

	meta, err := yaml.Marshal(frontMatter{
		Year:     sel.Year,
		Session:  string(sel.Session),
		Paper:    sel.PaperNumber,
		Variant:  sel.Variant,
		Question: sel.QuestionNumber,
		Subpart:  sel.Subpart,
	})
	require.NoError(t, err, "failed to encode front matter")

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(meta)
	sb.WriteString("---\n")
	sb.WriteString(content)
	return WriteDocument(t, dir, name, sb.String())
}
