package config

import (
	"errors"
	"flag"
	"os"

	"github.com/dmitrijs2005/inputguard/internal/flagx"
)

var errNegative = errors.New("value must not be negative")

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs so only the flags handled here are parsed.
//
// Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-l", "-d", "-m", "-s", "-r"}, "-r")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "credential record file")
	fs.StringVar(&cfg.ErrorLogPath, "l", cfg.ErrorLogPath, "diagnostic error log file")
	fs.StringVar(&cfg.AuditDBPath, "d", cfg.AuditDBPath, "audit journal database (empty disables)")
	fs.IntVar(&cfg.MaxVerifyAttempts, "m", cfg.MaxVerifyAttempts, "maximum verification attempts (0 = unlimited)")
	fs.Int64Var(&cfg.MaxInputFileSize, "s", cfg.MaxInputFileSize, "maximum input file size in bytes")
	fs.BoolVar(&cfg.RequirePersistence, "r", cfg.RequirePersistence, "fail if the credential cannot be saved")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if cfg.MaxVerifyAttempts < 0 || cfg.MaxInputFileSize < 0 {
		panic(errNegative)
	}
}
