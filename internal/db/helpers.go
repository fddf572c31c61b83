package db

import "strings"

// NullIfEmpty helps store optional strings as NULL instead of "".
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// LikePattern escapes s for use inside a LIKE '%...%' clause.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
