/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/netweave/pkg/logger"
)

var errEnvConfigNotStruct = errors.New("env config target must be a pointer to a struct")

// EnvConfigLoader fills a config struct from environment variables. Field
// names come from json tags, upper-cased, joined by underscores under the
// loader prefix: NETWEAVE_DATABASE_HOST sets Database.Host.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{logger: log, prefix: prefix}
}

// Load implements ConfigLoader. The path argument is ignored.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errEnvConfigNotStruct
	}

	return e.loadStruct(v.Elem(), strings.TrimSuffix(e.prefix, "_"))
}

func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		envName := buildEnvName(prefix, &fieldType)

		switch field.Kind() {
		case reflect.Struct:
			if err := e.loadStruct(field, envName); err != nil {
				return err
			}
		case reflect.Ptr:
			if field.IsNil() || field.Elem().Kind() != reflect.Struct {
				continue
			}

			if err := e.loadStruct(field.Elem(), envName); err != nil {
				return err
			}
		default:
			if err := setFieldFromEnv(field, &fieldType, envName); err != nil {
				return err
			}
		}
	}

	return nil
}

func buildEnvName(prefix string, fieldType *reflect.StructField) string {
	name := fieldType.Tag.Get("json")
	if idx := strings.Index(name, ","); idx >= 0 {
		name = name[:idx]
	}

	if name == "" || name == "-" {
		name = fieldType.Name
	}

	return prefix + "_" + strings.ToUpper(name)
}

func setFieldFromEnv(field reflect.Value, fieldType *reflect.StructField, envName string) error {
	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return nil
	}

	// Duration fields take Go duration strings regardless of their
	// underlying integer kind.
	if fieldType.Type.Name() == "Duration" {
		dur, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}

		field.SetInt(int64(dur))

		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}

		field.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}

		field.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}

		field.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}

		field.SetFloat(parsed)
	default:
		// Slices, maps and other composite fields stay file-only.
	}

	return nil
}
