// Package config loads runtime configuration for the inputguard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-p string   credential record file (default "password.hash")
//	-l string   diagnostic error log file (default "error_log.txt")
//	-d string   audit journal database, empty disables it (default "audit.db")
//	-m int      maximum verification attempts, 0 = unlimited
//	-s int      maximum input file size in bytes
//	-r          fail when the credential cannot be persisted
//
// # JSON schema
//
// Keys that are absent keep their previous value:
//
//	{
//	  "store_path": "password.hash",
//	  "error_log_path": "error_log.txt",
//	  "audit_db_path": "audit.db",
//	  "max_verify_attempts": 0,
//	  "max_input_file_size": 10485760,
//	  "require_persistence": false
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
