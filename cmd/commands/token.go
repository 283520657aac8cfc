package commands

import (
	"errors"
	"fmt"
	"time"

	"paintrack/config"
	"paintrack/internal/presentation/middleware"
)

const defaultTokenTTL = 24 * time.Hour

// HandleToken prints a bearer token for a user, for local testing against a
// running instance.
func HandleToken(args []string) {
	if len(args) < 4 {
		ExitOnError(errors.New("expected: token <config_path> <user_id> [ttl]"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	ttl := defaultTokenTTL
	if len(args) > 4 {
		ttl, err = time.ParseDuration(args[4])
		if err != nil {
			ExitOnError(fmt.Errorf("invalid ttl: %w", err))
		}
	}

	token, err := middleware.NewToken([]byte(cfg.JWTSecret), args[3], ttl)
	if err != nil {
		ExitOnError(err)
	}

	fmt.Println(token) //nolint
}
