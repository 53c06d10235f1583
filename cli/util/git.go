package util

import (
	"strings"
)

// GitConfigValue returns the value of the git configuration key, e.g. "user.name".
// An empty string is returned if git is missing or the key is not set.
func GitConfigValue(key string) string {
	out, err := RunCommandAndGetOutput("git", "config", "--get", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
