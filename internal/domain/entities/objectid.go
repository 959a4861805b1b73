package entities

import "regexp"

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether s has the 24-hex-character form the datastore requires
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}
