// Command token prints a bearer token for a staff member, signed with AUTH_SECRET.
//
//	go run ./cmd/token -actor hanako
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
)

func main() {
	actor := flag.String("actor", "", "staff name recorded on sales and movements")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *ttl == 0 {
		*ttl = cfg.Auth.TokenTTL
	}

	token, err := auth.New(cfg.Auth.Secret).Issue(*actor, *ttl)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
