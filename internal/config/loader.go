// Package config loads extractor configuration from YAML with .env and
// environment variable overrides.
//
// .env files are loaded before overrides are applied:
//
//  1. ENV_FILE (if set, only this file is loaded)
//  2. .env.local
//  3. .env
//
// Fields opt into environment overrides with an `env:"NAME"` struct tag.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadFile reads a YAML config file and applies environment variable overrides.
// A missing file is not an error: the zero value plus overrides is returned.
func LoadFile[T any](path string) (*T, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg T
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadWithDefaults is LoadFile followed by setDefaults; env overrides are
// re-applied afterwards so the environment always wins.
func LoadWithDefaults[T any](path string, setDefaults func(*T)) (*T, error) {
	cfg, err := LoadFile[T](path)
	if err != nil {
		return nil, err
	}

	if setDefaults != nil {
		setDefaults(cfg)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// GetConfigPath returns CONFIG_PATH or defaultPath.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}

func applyEnvOverrides(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}

		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}

		if envVal := os.Getenv(envTag); envVal != "" {
			setFieldFromString(field, envVal)
		}
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			if d, err := time.ParseDuration(val); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			field.SetFloat(f)
		}

	case reflect.Bool:
		field.SetBool(parseBool(val))

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(val, ",")
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			field.Set(reflect.ValueOf(parts))
		}

	default:
	}
}

// parseBool returns true for "true", "1", "yes" (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
