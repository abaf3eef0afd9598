package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix read by NewEnvLoader callers in this module.
const DefaultEnvPrefix = "RICHINPUT_"

// EnvLoader loads configuration from environment variables.
//
// Explicitly mapped variables land on their mapped path. Any other variable
// with the prefix is converted by section: RICHINPUT_EDITOR_TAB_SIZE
// becomes editor.tabSize.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for prefix, which should end in "_".
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with an explicit variable to path
// mapping.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping, environ: os.Environ}
}

// Shorthands for settings people commonly set from a shell.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "logging.level",
		prefix + "LOG_FILE":        "logging.file",
		prefix + "TAB_SIZE":        "editor.tabSize",
		prefix + "MULTILINE":       "editor.multiline",
		prefix + "MAX_LENGTH":      "editor.maxLength",
		prefix + "PLACEHOLDER":     "editor.placeholder",
		prefix + "EMOJI_CATALOG":   "emoji.catalog",
		prefix + "UNKNOWN_EMOJI":   "parsers.allowUnknownEmoji",
		prefix + "LUA_SCRIPTS":     "lua.scripts",
		prefix + "CONFIG_WATCH":    "watch.enabled",
		prefix + "CONFIG_DEBOUNCE": "watch.debounce",
	}
}

// Load reads the environment into a nested map. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// AddMapping maps envVar to a dotted config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// RemoveMapping removes an explicit mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToPath converts PREFIX_SECTION_SETTING_NAME to section.settingName.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	var setting strings.Builder
	setting.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		if p == "" {
			continue
		}
		setting.WriteString(strings.ToUpper(p[:1]))
		setting.WriteString(strings.ToLower(p[1:]))
	}
	return section + "." + setting.String()
}

// parseValue types a raw environment string: bool words, integers, decimals,
// JSON arrays and objects, otherwise the string itself.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return normalizeJSON(gjson.Parse(s).Value())
	}
	return s
}

// normalizeJSON turns whole JSON numbers into int64 so they decode into
// integer settings.
func normalizeJSON(v any) any {
	switch v := v.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	case []any:
		for i := range v {
			v[i] = normalizeJSON(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = normalizeJSON(v[k])
		}
		return v
	default:
		return v
	}
}

// setByPath sets a value in a nested map using a dotted path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
