package envutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// Source resolves configuration keys from the process environment first, then
// from file-provided defaults, then from the caller's default.
type Source struct {
	log  *logger.Logger
	file map[string]string
}

func NewSource(log *logger.Logger, file map[string]string) *Source {
	if file == nil {
		file = map[string]string{}
	}
	return &Source{log: log, file: file}
}

// LoadFile reads a flat YAML mapping of KEY: value pairs.
func LoadFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	var parsed map[string]interface{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	out := make(map[string]string, len(parsed))
	for k, v := range parsed {
		if v == nil {
			continue
		}
		switch t := v.(type) {
		case []interface{}:
			parts := make([]string, 0, len(t))
			for _, item := range t {
				parts = append(parts, fmt.Sprint(item))
			}
			out[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToUpper(k)] = fmt.Sprint(t)
		}
	}
	return out, nil
}

func (s *Source) lookup(key string) (string, string, bool) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), "environment", true
	}
	if s != nil {
		if v, ok := s.file[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), "file", true
		}
	}
	return "", "", false
}

func (s *Source) debug(msg string, keysAndValues ...interface{}) {
	if s == nil || s.log == nil {
		return
	}
	s.log.Debug(msg, keysAndValues...)
}

func (s *Source) String(key, def string) string {
	v, from, ok := s.lookup(key)
	if !ok {
		s.debug("Config key not set, using default", "env_var", key, "default", def)
		return def
	}
	s.debug("Config key found", "env_var", key, "source", from)
	return v
}

func (s *Source) Int(key string, def int) int {
	v, from, ok := s.lookup(key)
	if !ok {
		s.debug("Config key not set, using default", "env_var", key, "default", def)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		s.debug("Config key could not be parsed as int, using default", "env_var", key, "provided", v, "default", def, "error", err)
		return def
	}
	s.debug("Config key found", "env_var", key, "source", from, "value", i)
	return i
}

func (s *Source) Float(key string, def float64) float64 {
	v, from, ok := s.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.debug("Config key could not be parsed as float, using default", "env_var", key, "provided", v, "default", def, "error", err)
		return def
	}
	s.debug("Config key found", "env_var", key, "source", from, "value", f)
	return f
}

func (s *Source) Bool(key string, def bool) bool {
	v, _, ok := s.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		s.debug("Config key could not be parsed as bool, using default", "env_var", key, "provided", v, "default", def)
		return def
	}
}

// List splits a comma separated value, dropping blanks.
func (s *Source) List(key string, def []string) []string {
	v, _, ok := s.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Int(name string, def int) int {
	return NewSource(nil, nil).Int(name, def)
}

func Bool(name string, def bool) bool {
	return NewSource(nil, nil).Bool(name, def)
}

func String(name, def string) string {
	return NewSource(nil, nil).String(name, def)
}
