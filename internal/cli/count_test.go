package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sloc/internal/config"
	"github.com/vvka-141/sloc/internal/linescan"
	"github.com/vvka-141/sloc/internal/logging"
	"github.com/vvka-141/sloc/internal/report"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// parseCountFlags registers the count flags on a bare command and parses args.
func parseCountFlags(t *testing.T, args ...string) (*cobra.Command, *countFlagValues) {
	t.Helper()
	flags := &countFlagValues{}
	cmd := &cobra.Command{Use: "count"}
	registerCountFlags(cmd, flags)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, flags
}

func TestMergeCountSettings_Defaults(t *testing.T) {
	t.Setenv(envWorkers, "")
	t.Setenv(envFormat, "")
	cmd, flags := parseCountFlags(t)

	settings, err := mergeCountSettings(cmd, flags, &config.ProjectConfig{})
	require.NoError(t, err)

	assert.Equal(t, 0, settings.workers)
	assert.Equal(t, report.FormatText, settings.format)
	assert.Equal(t, linescan.PolicyCodeWins, settings.engine.policy)
	assert.Empty(t, settings.engine.encoding)
	assert.False(t, settings.scan.IgnoreDefault)
	assert.Empty(t, settings.scan.IncludeExtensions)
	assert.False(t, settings.byFile)
}

func TestMergeCountSettings_Precedence(t *testing.T) {
	cfg := &config.ProjectConfig{
		Extensions: config.ExtensionsConfig{
			Include:       []string{"tpl"},
			Ignore:        []string{"css"},
			IgnoreDefault: true,
		},
		IgnorePaths: []string{"vendor/**"},
		Workers:     2,
		MixedPolicy: "comment",
		Encoding:    "windows-1252",
		Format:      "json",
	}

	t.Run("config beats defaults", func(t *testing.T) {
		t.Setenv(envWorkers, "")
		t.Setenv(envFormat, "")
		cmd, flags := parseCountFlags(t)

		settings, err := mergeCountSettings(cmd, flags, cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, settings.workers)
		assert.Equal(t, report.FormatJSON, settings.format)
		assert.Equal(t, linescan.PolicyCommentWins, settings.engine.policy)
		assert.Equal(t, "windows-1252", settings.engine.encoding)
		assert.Equal(t, []string{"tpl"}, settings.scan.IncludeExtensions)
		assert.True(t, settings.scan.IgnoreDefault)
	})

	t.Run("env beats config", func(t *testing.T) {
		t.Setenv(envWorkers, "5")
		t.Setenv(envFormat, "text")
		cmd, flags := parseCountFlags(t)

		settings, err := mergeCountSettings(cmd, flags, cfg)
		require.NoError(t, err)
		assert.Equal(t, 5, settings.workers)
		assert.Equal(t, report.FormatText, settings.format)
	})

	t.Run("flags beat env and config", func(t *testing.T) {
		t.Setenv(envWorkers, "5")
		t.Setenv(envFormat, "text")
		cmd, flags := parseCountFlags(t,
			"-w", "1", "--format", "json", "--mixed-policy", "code",
			"--encoding", "utf-8", "-e", "go,rs", "--ignore-default=false")

		settings, err := mergeCountSettings(cmd, flags, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, settings.workers)
		assert.Equal(t, report.FormatJSON, settings.format)
		assert.Equal(t, linescan.PolicyCodeWins, settings.engine.policy)
		assert.Equal(t, "utf-8", settings.engine.encoding)
		assert.Equal(t, []string{"go", "rs"}, settings.scan.IncludeExtensions)
		assert.False(t, settings.scan.IgnoreDefault)
	})

	t.Run("ignore lists combine", func(t *testing.T) {
		cmd, flags := parseCountFlags(t, "-i", "less", "-x", "gen/**", "-x", "*.min.js")

		settings, err := mergeCountSettings(cmd, flags, cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"css", "less"}, settings.scan.IgnoreExtensions)
		assert.Equal(t, []string{"vendor/**", "gen/**", "*.min.js"}, settings.scan.IgnorePaths)
	})
}

func TestMergeCountSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"negative workers flag", "", []string{"-w", "-1"}},
		{"unparsable workers env", "many", nil},
		{"negative workers env", "-2", nil},
		{"unknown format", "", []string{"--format", "xml"}},
		{"unknown policy", "", []string{"--mixed-policy", "both"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envWorkers, tt.env)
			t.Setenv(envFormat, "")
			cmd, flags := parseCountFlags(t, tt.args...)

			_, err := mergeCountSettings(cmd, flags, &config.ProjectConfig{})
			require.Error(t, err)
			assert.ErrorIs(t, err, sloc.ErrInvalidConfig)
		})
	}
}

func TestLoadProjectConfig(t *testing.T) {
	logger := logging.NewNullLogger()

	t.Run("absent config is empty", func(t *testing.T) {
		cfg, err := loadProjectConfig(t.TempDir(), "", logger)
		require.NoError(t, err)
		assert.Equal(t, &config.ProjectConfig{}, cfg)
	})

	t.Run("found next to a file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, config.ConfigFileName, "workers: 3\n")
		writeFile(t, dir, "main.go", "package main\n")

		cfg, err := loadProjectConfig(filepath.Join(dir, "main.go"), "", logger)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Workers)
	})

	t.Run("explicit missing file is a config error", func(t *testing.T) {
		_, err := loadProjectConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"), logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, sloc.ErrInvalidConfig)
	})

	t.Run("invalid config is reported", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, config.ConfigFileName, "wrokers: 3\n")

		_, err := loadProjectConfig(dir, "", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, sloc.ErrInvalidConfig)
	})
}

func TestCount_TextReport(t *testing.T) {
	t.Setenv(envFormat, "")
	dir := newProject(t)

	stdout, _, err := executeCommand(t, "count", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Language")
	assert.Contains(t, stdout, "python")
	assert.Contains(t, stdout, "Source lines (code)")
	assert.NotContains(t, stdout, "notes.txt")
}

func TestCount_JSONReport(t *testing.T) {
	dir := newProject(t)

	stdout, _, err := executeCommand(t, "count", dir, "--format", "json", "--by-file")
	require.NoError(t, err)

	doc := decodeReport(t, stdout)
	assert.Equal(t, sloc.Totals{Files: 3, Lines: 7, Blank: 1, Comment: 2, Code: 4}, doc.Totals)
	require.Len(t, doc.Files, 3)
	assert.Equal(t, []string{"main.go", "util.py", "vendor/lib.go"}, relPaths(t, dir, doc.Files))

	byLang := map[string]sloc.Totals{}
	for _, l := range doc.Languages {
		byLang[l.Language] = l.Totals
	}
	assert.Equal(t, 2, byLang["go"].Files)
	assert.Equal(t, 1, byLang["python"].Comment)
}

func TestCount_Filters(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFiles int
		wantCode  int
	}{
		{"ignore paths", []string{"-x", "vendor/**"}, 2, 3},
		{"include extra extension", []string{"-e", "txt"}, 4, 5},
		{"include only", []string{"-e", "go", "-d"}, 2, 3},
		{"ignore extension", []string{"-i", ".py"}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newProject(t)
			args := append([]string{"count", dir, "--format", "json"}, tt.args...)

			stdout, _, err := executeCommand(t, args...)
			require.NoError(t, err)

			doc := decodeReport(t, stdout)
			assert.Equal(t, tt.wantFiles, doc.Totals.Files)
			assert.Equal(t, tt.wantCode, doc.Totals.Code)
		})
	}
}

func TestCount_ProjectConfig(t *testing.T) {
	t.Setenv(envFormat, "")
	dir := newProject(t)
	writeFile(t, dir, config.ConfigFileName, `format: json
ignore_paths:
  - "vendor/**"
languages:
  - id: zig
    name: Zig
    extensions: [".zig"]
    line_comments: ["//"]
    quotes: ['"']
    escape: "\\"
`)
	writeFile(t, dir, "build.zig", "// build\nconst x = \"//\";\n")

	stdout, _, err := executeCommand(t, "count", dir)
	require.NoError(t, err)

	// main.go, util.py, build.zig and the YAML config itself.
	doc := decodeReport(t, stdout)
	assert.Equal(t, 4, doc.Totals.Files)

	var zig *sloc.Totals
	for i := range doc.Languages {
		if doc.Languages[i].Language == "zig" {
			zig = &doc.Languages[i].Totals
		}
	}
	require.NotNil(t, zig, "zig should be counted")
	assert.Equal(t, 1, zig.Comment)
	assert.Equal(t, 1, zig.Code)
}

func TestCount_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.c", "int x;\n")
	writeFile(t, dir, "blob.c", "int\x00x;\n")

	stdout, _, err := executeCommand(t, "count", dir, "--format", "json")
	require.NoError(t, err)

	doc := decodeReport(t, stdout)
	assert.Equal(t, 1, doc.Totals.Files)
	require.Len(t, doc.Skipped, 1)
	assert.Contains(t, doc.Skipped[0].Path, "blob.c")
}

func TestCount_SingleFile(t *testing.T) {
	dir := newProject(t)

	stdout, _, err := executeCommand(t, "count", filepath.Join(dir, "main.go"), "--format", "json")
	require.NoError(t, err)

	doc := decodeReport(t, stdout)
	assert.Equal(t, sloc.Totals{Files: 1, Lines: 4, Blank: 1, Comment: 1, Code: 2}, doc.Totals)
}

func TestCount_EmptyDirectoryReportsNoMatches(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "count", t.TempDir(), "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, stderr, "No files matched")
	assert.Equal(t, sloc.Totals{}, decodeReport(t, stdout).Totals)
}

func TestCount_VerboseReportsCacheStats(t *testing.T) {
	dir := newProject(t)

	_, stderr, err := executeCommand(t, "count", dir, "-v", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Classification cache:")
}

func TestCount_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
		want int
	}{
		{"missing path", func(dir string) []string { return []string{"count", filepath.Join(dir, "nope")} }, sloc.ExitPathNotFound},
		{"missing argument", func(string) []string { return []string{"count"} }, sloc.ExitUsageError},
		{"unknown flag", func(dir string) []string { return []string{"count", dir, "--nope"} }, sloc.ExitUsageError},
		{"bad format", func(dir string) []string { return []string{"count", dir, "--format", "xml"} }, sloc.ExitConfigError},
		{"bad glob", func(dir string) []string { return []string{"count", dir, "-x", "[abc"} }, sloc.ExitConfigError},
		{"ignore default alone", func(dir string) []string { return []string{"count", dir, "-d"} }, sloc.ExitConfigError},
		{"bad encoding", func(dir string) []string { return []string{"count", dir, "--encoding", "klingon"} }, sloc.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args(newProject(t))...)
			require.Error(t, err)
			assert.Equal(t, tt.want, sloc.ExitCodeForError(err))
		})
	}
}

type countReport struct {
	Totals    sloc.Totals `json:"totals"`
	Languages []struct {
		Language string `json:"language"`
		sloc.Totals
	} `json:"languages"`
	Files   []sloc.FileResult  `json:"files"`
	Skipped []sloc.SkippedFile `json:"skipped"`
}

func decodeReport(t *testing.T, out string) countReport {
	t.Helper()
	var doc countReport
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "output: %s", out)
	return doc
}

func relPaths(t *testing.T, root string, files []sloc.FileResult) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// newProject lays out a small tree: two Go files (one under vendor/), a
// Python file and a text file that is not counted by default.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "// Package main.\npackage main\n\nfunc main() {}\n")
	writeFile(t, dir, "util.py", "# helper\nx = 1\n")
	writeFile(t, dir, "notes.txt", "hello\n")
	writeFile(t, dir, "vendor/lib.go", "package lib\n")
	return dir
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
