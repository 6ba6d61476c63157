// Package tokengen issues bearer tokens for operators and local testing.
package tokengen

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"internhub/internal/auth"
	"internhub/internal/config"
	"internhub/internal/model"
)

// Config holds the identity to issue a token for.
type Config struct {
	UserID string
	Role   string
	TTL    time.Duration
}

// ParseConfig parses flags into a Config. A zero TTL means the JWT_TTL_MIN default.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.UserID, "user", "", "user id (uuid) to embed in the token")
	fs.StringVar(&cfg.Role, "role", "", "role: admin, faculty, student or company")
	fs.DurationVar(&cfg.TTL, "ttl", 0, "token lifetime, e.g. 2h (default: JWT_TTL_MIN)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.UserID == "" {
		return Config{}, errors.New("-user is required")
	}
	if !model.Role(cfg.Role).Valid() {
		return Config{}, fmt.Errorf("-role %q is not a known role", cfg.Role)
	}
	return cfg, nil
}

// Run signs a token with the configured secret and writes it to out.
func Run(cfg Config, jwtCfg config.JWTConfig, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Duration(jwtCfg.TTLMin) * time.Minute
	}

	svc, err := auth.NewTokenService(jwtCfg.Secret, jwtCfg.Issuer, ttl)
	if err != nil {
		return err
	}
	token, exp, err := svc.Generate(cfg.UserID, model.Role(cfg.Role))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, err = fmt.Fprintf(out, "%s\n# expires %s\n", token, exp.UTC().Format(time.RFC3339))
	return err
}
