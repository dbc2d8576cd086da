package repository

import (
	"slices"
	"sort"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// sortedPuts returns the put keys of batch in lexical order so statements run in a stable order.
func sortedPuts(batch sessionDomain.Batch) []string {
	keys := make([]string, 0, len(batch.Puts))
	for key := range batch.Puts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// filterKeys keeps the entries of values whose key is listed in keys.
func filterKeys(values map[string][]byte, keys []string) map[string][]byte {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := values[key]; ok {
			out[key] = value
		}
	}
	return out
}

// rewritesSession reports whether batch sets or deletes every session key, leaving nothing
// of the previous profile behind.
func rewritesSession(batch sessionDomain.Batch) bool {
	for _, key := range sessionDomain.Keys() {
		if _, ok := batch.Puts[key]; ok {
			continue
		}
		if !slices.Contains(batch.Deletes, key) {
			return false
		}
	}
	return true
}
