package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL combines a server URL with a database name.
// Existing query parameters are preserved and sslmode=disable is added when absent.
// An empty databaseName returns baseURL unchanged.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	baseURL = strings.TrimRight(baseURL, "/")
	var databaseURL string

	if base, query, ok := strings.Cut(baseURL, "?"); ok {
		databaseURL = fmt.Sprintf("%s/%s?%s", strings.TrimRight(base, "/"), databaseName, query)
	} else {
		databaseURL = fmt.Sprintf("%s/%s", baseURL, databaseName)
	}

	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "&"
		if !strings.Contains(databaseURL, "?") {
			separator = "?"
		}
		databaseURL = fmt.Sprintf("%s%ssslmode=disable", databaseURL, separator)
	}

	return databaseURL
}

// hasQueryParam reports whether key is set in a URL query or a keyword/value DSN
func hasQueryParam(databaseURL, key string) bool {
	return strings.Contains(databaseURL, key+"=")
}
