// Command token prints a signed bearer token for the given user and role.
//
//	go run ./cmd/token -user <uuid> -role faculty
package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"internhub/internal/config"
	"internhub/internal/tools/tokengen"
)

func main() {
	cfg, err := tokengen.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("parse flags: %v", err)
	}
	if err := tokengen.Run(cfg, config.Load().JWT, os.Stdout); err != nil {
		exitf("issue token: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
