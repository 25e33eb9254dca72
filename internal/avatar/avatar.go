// Package avatar derives deterministic gravatar URLs from email addresses.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	size    = "200"
	rating  = "pg"
	missing = "mm"
)

// URL returns the gravatar URL for the given email. The same email always
// produces the same URL: lowercase, trimmed, md5-hashed per the gravatar
// contract.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s",
		hex.EncodeToString(sum[:]), size, rating, missing)
}
