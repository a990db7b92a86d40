package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxGUIDLength = 30

var nonSlug = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// NewGUID builds a readable unique identifier such as "F_3f9a2c1b_family_1".
func NewGUID(prefix, name string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	guid := prefix + "_" + id
	if slug := strings.Trim(nonSlug.ReplaceAllString(name, "_"), "_"); slug != "" {
		guid += "_" + strings.ToLower(slug)
	}
	if len(guid) > maxGUIDLength {
		guid = guid[:maxGUIDLength]
	}
	return guid
}
