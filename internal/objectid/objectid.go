// Package objectid generates the short human-facing codes shown in tables
// and dialogs ("cus_x1f9k2d8", "sal_p3m8r1w5"). The suffix comes from
// math/rand and uniqueness is not checked against existing rows, matching
// how codes have always been issued here.
package objectid

import "math/rand"

const (
	alphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen = 8
)

// Generate builds a code for the given table name: the first three letters
// of the table, an underscore, and a random alphanumeric suffix.
func Generate(table string) string {
	tag := table
	if len(tag) > 3 {
		tag = tag[:3]
	}

	buf := make([]byte, suffixLen)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}

	return tag + "_" + string(buf)
}
