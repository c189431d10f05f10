package service

import "strings"

// slugify lowercases a title and joins its words with hyphens.
func slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}
