package matcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestLoadConfigPatternsAsBareString(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"patterns": "::foo"}`)

	m := New(false)
	var files []string
	if warnings, err := m.LoadConfig(cfg, &files); err != nil || len(warnings) != 0 {
		t.Fatalf("LoadConfig: warnings=%v err=%v", warnings, err)
	}
	if len(m.ctor) != 1 || len(m.dtor) != 1 {
		t.Fatalf("got ctor=%d dtor=%d, want 1 each (a bare string binds both)", len(m.ctor), len(m.dtor))
	}
}

func TestLoadConfigPatternsAsArray(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"patterns": ["::a", "::b"]}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(m.ctor) != 2 || len(m.dtor) != 2 {
		t.Fatalf("got ctor=%d dtor=%d, want 2 each", len(m.ctor), len(m.dtor))
	}
}

func TestLoadConfigPatternsObjectUnionsAllIntoBothSets(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{
		"patterns": {"ctor": "::a", "dtor": ["::b", "::c"], "all": "::z"}
	}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(m.ctor) != 2 {
		t.Fatalf("got %d ctor patterns, want 2 (ctor ∪ all)", len(m.ctor))
	}
	if len(m.dtor) != 3 {
		t.Fatalf("got %d dtor patterns, want 3 (dtor ∪ all)", len(m.dtor))
	}
}

func TestLoadConfigPatternsObjectRequiresAtLeastOneField(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"patterns": {}}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); !errors.Is(err, ErrConfigMissingPatterns) {
		t.Fatalf("got err=%v, want ErrConfigMissingPatterns", err)
	}
}

func TestLoadConfigFilesResolveRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeTestConfig(t, dir, "sub/a.cpp", "")
	cfg := writeTestConfig(t, dir, "debase.json", `{"files": ["sub/a.cpp"], "patterns": "::x"}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(dir, "sub", "a.cpp") {
		t.Fatalf("got files=%v, want [%s]", files, filepath.Join(dir, "sub", "a.cpp"))
	}
}

func TestLoadConfigMissingFileStrictIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"files": "nope.cpp", "patterns": "::x"}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); !errors.Is(err, ErrConfigFile) {
		t.Fatalf("got err=%v, want ErrConfigFile", err)
	}
}

func TestLoadConfigMissingFilePermissiveWarnsAndSkips(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"files": "nope.cpp", "patterns": "::x"}`)

	m := New(true)
	var files []string
	warnings, err := m.LoadConfig(cfg, &files)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrConfigFile) {
		t.Fatalf("got warnings=%v, want one ErrConfigFile warning", warnings)
	}
	if len(files) != 0 {
		t.Fatalf("got files=%v, want none resolved", files)
	}
}

func TestLoadConfigRejectsSecondLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{"patterns": "::x"}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); err != nil {
		t.Fatalf("first LoadConfig: %v", err)
	}
	if _, err := m.LoadConfig(cfg, &files); !errors.Is(err, ErrConfigAlreadyLoaded) {
		t.Fatalf("got err=%v, want ErrConfigAlreadyLoaded", err)
	}
}

func TestLoadConfigMissingPatternsFieldIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir, "debase.json", `{}`)

	m := New(false)
	var files []string
	if _, err := m.LoadConfig(cfg, &files); !errors.Is(err, ErrConfigMissingPatterns) {
		t.Fatalf("got err=%v, want ErrConfigMissingPatterns", err)
	}
}
