// agreement-token issues an operator bearer token for the agreement server.
//
// Usage: agreement-token -config config.yaml -subject ops -ttl 1h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chainsafe/agreement-middleware/pkg/auth"
	"github.com/chainsafe/agreement-middleware/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	subject := flag.String("subject", "operator", "Token subject")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	validator := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if !validator.IsConfigured() {
		fmt.Fprintf(os.Stderr, "auth.jwt_secret is not set (or export %s)\n", config.JWTSecretEnv)
		os.Exit(1)
	}

	token, err := validator.IssueToken(*subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
