// Package gitutil looks up version-control identity for template defaults.
package gitutil

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Identity returns the git user.name and user.email configured for the
// current environment. Lookups that fail or time out yield empty strings;
// callers treat those as "no default available".
func Identity(ctx context.Context) (name, email string) {
	return configValue(ctx, "user.name"), configValue(ctx, "user.email")
}

func configValue(ctx context.Context, key string) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "config", "--get", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
