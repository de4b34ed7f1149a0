package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sentinel errors for the configuration loader's error taxonomy.
var (
	ErrConfigShape           = errors.New("matcher: config field has the wrong shape")
	ErrConfigMissingPatterns = errors.New("matcher: config must populate ctor, dtor, or all patterns")
	ErrConfigAlreadyLoaded   = errors.New("matcher: a config was already loaded into this matcher")
	ErrConfigFile            = errors.New("matcher: config file entry is missing or not a regular file")
)

type rawConfig struct {
	Files    json.RawMessage `json:"files,omitempty"`
	Patterns json.RawMessage `json:"patterns"`
}

// LoadConfig reads the JSON document at path (see §4.9's shape),
// compiles every pattern it names into the matcher's ctor/dtor sets,
// and appends every resolved, existence-checked file path to
// *outFiles. Re-loading a second config into the same matcher is
// rejected outright.
//
// In permissive mode, a missing or non-regular file entry, or a
// pattern that fails to compile, downgrades to a warning (returned in
// the first result) and the offending entry is skipped; in strict mode
// the same condition is the returned error. A field of the wrong JSON
// shape is the returned error in both modes; it is not skipped.
func (m *Matcher) LoadConfig(path string, outFiles *[]string) ([]error, error) {
	if m.configPath != "" {
		return nil, fmt.Errorf("%w: already loaded %q", ErrConfigAlreadyLoaded, m.configPath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	var cfg rawConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigShape, err)
	}

	var warnings []error

	fileWarnings, err := m.loadConfigFiles(filepath.Dir(abs), cfg.Files, outFiles)
	warnings = append(warnings, fileWarnings...)
	if err != nil {
		return warnings, err
	}

	patternWarnings, err := m.loadConfigPatterns(cfg.Patterns)
	warnings = append(warnings, patternWarnings...)
	if err != nil {
		return warnings, err
	}

	m.configPath = abs
	return warnings, nil
}

func (m *Matcher) loadConfigFiles(configDir string, raw json.RawMessage, outFiles *[]string) ([]error, error) {
	entries, err := decodeStringOrSlice(raw)
	if err != nil {
		return nil, err
	}

	var warnings []error
	for _, entry := range entries {
		resolved := filepath.Clean(filepath.Join(configDir, entry))
		info, statErr := os.Stat(resolved)
		if statErr != nil || !info.Mode().IsRegular() {
			wrapped := fmt.Errorf("%w: %q", ErrConfigFile, entry)
			if !m.permissive {
				return warnings, wrapped
			}
			warnings = append(warnings, wrapped)
			continue
		}
		*outFiles = append(*outFiles, resolved)
	}
	return warnings, nil
}

func (m *Matcher) loadConfigPatterns(raw json.RawMessage) ([]error, error) {
	if len(raw) == 0 {
		return nil, ErrConfigMissingPatterns
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigShape, err)
	}

	var ctorPats, dtorPats []string
	switch v := generic.(type) {
	case string:
		ctorPats, dtorPats = []string{v}, []string{v}

	case []interface{}:
		strs, err := toStringSlice(v)
		if err != nil {
			return nil, err
		}
		ctorPats, dtorPats = strs, strs

	case map[string]interface{}:
		ctorOnly, err := fieldStrings(v, "ctor")
		if err != nil {
			return nil, err
		}
		dtorOnly, err := fieldStrings(v, "dtor")
		if err != nil {
			return nil, err
		}
		all, err := fieldStrings(v, "all")
		if err != nil {
			return nil, err
		}
		if len(ctorOnly) == 0 && len(dtorOnly) == 0 && len(all) == 0 {
			return nil, ErrConfigMissingPatterns
		}
		ctorPats = append(append([]string{}, ctorOnly...), all...)
		dtorPats = append(append([]string{}, dtorOnly...), all...)

	default:
		return nil, ErrConfigShape
	}

	var warnings []error
	for _, p := range ctorPats {
		if err := m.AddCtorPattern(p); err != nil {
			if !m.permissive {
				return warnings, err
			}
			warnings = append(warnings, err)
		}
	}
	for _, p := range dtorPats {
		if err := m.AddDtorPattern(p); err != nil {
			if !m.permissive {
				return warnings, err
			}
			warnings = append(warnings, err)
		}
	}
	return warnings, nil
}

func fieldStrings(obj map[string]interface{}, key string) ([]string, error) {
	v, ok := obj[key]
	if !ok {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []interface{}:
		return toStringSlice(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrConfigShape, key)
	}
}

func toStringSlice(items []interface{}) ([]string, error) {
	out := make([]string, len(items))
	for i, v := range items {
		s, ok := v.(string)
		if !ok {
			return nil, ErrConfigShape
		}
		out[i] = s
	}
	return out, nil
}

// decodeStringOrSlice decodes raw as either a bare JSON string or an
// array of strings, per the config's "path" | ["path", ...] shape.
// A missing field decodes to a nil slice and no error.
func decodeStringOrSlice(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}, nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}
	return nil, ErrConfigShape
}
