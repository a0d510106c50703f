// Package gravatar derives avatar image URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// URL returns the Gravatar URL for the given email: 200px, PG-rated, with the
// "mystery man" default when the email has no Gravatar account.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
