// Command gentoken issues a gateway bearer token for one chat operator id.
//
//	go run ./cmd/gentoken -operator 123456789
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tuanona/kasir-bot/internal/config"
	"github.com/tuanona/kasir-bot/internal/middleware"
)

func main() {
	operator := flag.Int64("operator", 0, "chat operator id to embed in the token")
	hours := flag.Int("hours", 0, "token lifetime in hours (default JWT_EXPIRATION_HOURS)")
	flag.Parse()

	if *operator == 0 {
		fmt.Fprintln(os.Stderr, "gentoken: -operator is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gentoken:", err)
		os.Exit(1)
	}
	ttl := time.Duration(cfg.JWTExpirationHours) * time.Hour
	if *hours > 0 {
		ttl = time.Duration(*hours) * time.Hour
	}

	tok, err := middleware.IssueToken(cfg.JWTSecret, *operator, ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gentoken:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
