package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/deskmate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the help-desk backend (default from Config)
//	-r string   portal role: user or agent
//	-d string   path to the local state database
//	-l string   path to the log file
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the help-desk backend")
	role := fs.String("r", string(cfg.Role), "portal role: user or agent")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "path to the local state database")
	fs.StringVar(&cfg.LogFilePath, "l", cfg.LogFilePath, "path to the log file")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Role = Role(*role)
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
