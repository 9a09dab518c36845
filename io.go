// File: argmap/io.go
package argmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format for Save and Load.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatTOML
	FormatCBOR
)

// Save writes the Dict to path in the format named by the file extension.
// The write is atomic: content goes to a temporary file in the target
// directory which is then renamed over path. An existing file fails with
// ErrFileExists unless allowOverwrite. Returns the absolute path written.
func (d *Dict) Save(path string, allowOverwrite bool) (string, error) {
	abs, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if !allowOverwrite {
		if _, err := os.Stat(abs); err == nil {
			return "", fmt.Errorf("%w: %s", ErrFileExists, abs)
		}
	}

	format := formatFromExtension(abs)
	if format == FormatUnknown {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(abs))
	}
	data, err := encode(d, format)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", abs, err)
	}
	if err := atomicWriteFile(abs, data); err != nil {
		return "", err
	}
	return abs, nil
}

// Load reads a serialized file into a Dict. The format is taken from the
// file extension, falling back to content sniffing for unrecognized
// extensions. A missing file fails with ErrFileNotFound.
func Load(path string) (*Dict, error) {
	abs, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, abs)
		}
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	format := formatFromExtension(abs)
	if format == FormatUnknown {
		format = formatFromContent(data)
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: cannot determine format of %s", ErrUnknownFormat, abs)
	}
	d, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", abs, err)
	}
	return d, nil
}

func formatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".cbor":
		return FormatCBOR
	default:
		return FormatUnknown
	}
}

// formatFromContent sniffs the payload when the extension is no help:
// JSON by its leading brace, CBOR by a map major type in the first byte,
// TOML by a bare table header, YAML as the tolerant fallback.
func formatFromContent(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' {
		if json.Valid(trimmed) {
			return FormatJSON
		}
	}
	if trimmed[0]>>5 == 5 { // CBOR major type 5: map
		return FormatCBOR
	}
	if trimmed[0] == '[' && bytes.Contains(trimmed, []byte("]")) && !bytes.Contains(trimmed, []byte(":")) {
		return FormatTOML
	}
	if bytes.Contains(trimmed, []byte(":")) {
		return FormatYAML
	}
	if bytes.Contains(trimmed, []byte("=")) {
		return FormatTOML
	}
	return FormatUnknown
}

func encode(d *Dict, format Format) ([]byte, error) {
	m := d.ToMap()
	switch format {
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatCBOR:
		return cbor.Marshal(m)
	default:
		return nil, ErrUnknownFormat
	}
}

func decode(data []byte, format Format) (*Dict, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatCBOR:
		var generic any
		if err := cbor.Unmarshal(data, &generic); err != nil {
			return nil, err
		}
		m, ok := normalizeValue(generic).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("top-level value is not a mapping")
		}
		raw = m
	default:
		return nil, ErrUnknownFormat
	}
	normalized, ok := normalizeValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is not a mapping")
	}
	return FromMap(normalized), nil
}

// normalizeValue reduces decoder-specific shapes to the canonical value
// set: string-keyed maps, []any, int64, float64, bool, string, nil.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprintf("%v", k)] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

// resolvePath expands environment references and a leading "~" and returns
// an absolute path.
func resolvePath(path string) (string, error) {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}
	return abs, nil
}

// atomicWriteFile writes data to a temporary sibling of path and renames
// it into place so readers never observe a partial file.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}
