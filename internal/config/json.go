package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/inputguard/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	StorePath          *string `json:"store_path"`
	ErrorLogPath       *string `json:"error_log_path"`
	AuditDBPath        *string `json:"audit_db_path"`
	MaxVerifyAttempts  *int    `json:"max_verify_attempts"`
	MaxInputFileSize   *int64  `json:"max_input_file_size"`
	RequirePersistence *bool   `json:"require_persistence"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from -c or -config. Without those flags it does nothing.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.ErrorLogPath != nil {
		cfg.ErrorLogPath = *jc.ErrorLogPath
	}
	if jc.AuditDBPath != nil {
		cfg.AuditDBPath = *jc.AuditDBPath
	}
	if jc.MaxVerifyAttempts != nil {
		cfg.MaxVerifyAttempts = *jc.MaxVerifyAttempts
	}
	if jc.MaxInputFileSize != nil {
		cfg.MaxInputFileSize = *jc.MaxInputFileSize
	}
	if jc.RequirePersistence != nil {
		cfg.RequirePersistence = *jc.RequirePersistence
	}
}
