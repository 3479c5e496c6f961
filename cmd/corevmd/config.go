// Copyright 2024 The corevm Authors
// This file is part of corevm.
//
// corevm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corevm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corevm. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/chainvm/corevm/orchestrator"
)

// tomlSettings mirrors the teacher's cmd/gprobe convention: TOML keys use
// the same names as the Go struct fields, with no case-folding surprises.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type fileConfig struct {
	P2P orchestrator.P2PConfig
}

func loadConfig(path string) (orchestrator.P2PConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return orchestrator.P2PConfig{}, err
	}
	defer f.Close()

	var cfg fileConfig
	if err := tomlSettings.NewDecoder(f).Decode(&cfg); err != nil {
		return orchestrator.P2PConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.P2P, nil
}
