package app

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"fotolink/internal/config"
)

// FillPasswords prompts for the password of every configured user whose
// password is empty and stores the answers back into cfg. Prompting
// requires an interactive terminal; commands that never contact the
// NAS skip this step.
func FillPasswords(cfg *config.Config) error {
	fd := int(os.Stdin.Fd())
	for i := range cfg.Users {
		if cfg.Users[i].Password != "" {
			continue
		}
		if !term.IsTerminal(fd) {
			return fmt.Errorf("no password configured for %s and stdin is not a terminal", cfg.Users[i].Username)
		}

		fmt.Fprintf(os.Stderr, "Password for %s: ", cfg.Users[i].Username)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password for %s: %w", cfg.Users[i].Username, err)
		}
		if len(secret) == 0 {
			return fmt.Errorf("empty password for %s", cfg.Users[i].Username)
		}
		cfg.Users[i].Password = string(secret)
	}
	return nil
}
