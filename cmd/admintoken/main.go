package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/erp/fulfillment-router/internal/infrastructure/auth"
	"github.com/erp/fulfillment-router/internal/infrastructure/config"
)

func main() {
	var (
		subject string
		scopes  string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "subject", "", "Token subject, e.g. the operator or service name (required)")
	flag.StringVar(&scopes, "scopes", "", "Comma separated scopes (default: all)")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
	flag.Parse()

	if err := run(subject, scopes, ttl); err != nil {
		fmt.Fprintf(os.Stderr, "admintoken: %v\n", err)
		os.Exit(1)
	}
}

func run(subject, rawScopes string, ttl time.Duration) error {
	if subject == "" {
		flag.Usage()
		return errors.New("subject is required")
	}
	scopes, err := parseScopes(rawScopes)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	token, err := auth.NewJWTService(cfg.JWT).GenerateToken(subject, scopes, ttl)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(token)
}

func parseScopes(raw string) ([]auth.Scope, error) {
	known := auth.AllScopes()
	if strings.TrimSpace(raw) == "" {
		return known, nil
	}

	var scopes []auth.Scope
	for part := range strings.SplitSeq(raw, ",") {
		scope := auth.Scope(strings.TrimSpace(part))
		if scope == "" {
			continue
		}
		if !slices.Contains(known, scope) {
			return nil, fmt.Errorf("unknown scope %q", scope)
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}
