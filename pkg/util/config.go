// Copyright 2024-2025 unionvec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type DemoData struct {
	RowCount int    `tag:"rowCount"`
	Layout   string `tag:"layout"`
	Field    string `tag:"field"`
}

type DemoResult struct {
	Path string `tag:"path"`
}

type DebugOptions struct {
	PrintResult bool `tag:"printResult"`
	MaxPrint    int  `tag:"maxPrint"`
}

type Config struct {
	Demo   DemoData     `tag:"demo"`
	Result DemoResult   `tag:"result"`
	Debug  DebugOptions `tag:"debug"`
}

// LoadConfigFile decodes the first toml file found under dirPaths into
// cfg. Returns false when none exists.
func LoadConfigFile(dirPaths []string, fileName string, cfg *Config) (bool, error) {
	for _, dirPath := range dirPaths {
		fpath := filepath.Join(dirPath, fileName)
		if !FileIsValid(fpath) {
			continue
		}
		if _, err := toml.DecodeFile(fpath, cfg); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
