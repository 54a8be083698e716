package fulfillment

import "strings"

// genericCreateFailure is the exact message the platform returns for product
// creation failures regardless of cause. In practice it shows up when the SKU
// already exists remotely, so it is classified as a likely duplicate. This is
// a heuristic, not a guarantee: the raw message is always surfaced next to
// the verdict so operators can tell a misclassified validation error apart.
const genericCreateFailure = "Error while creating product."

// duplicateMarkers is the classifier's match table. Each entry is a group of
// substrings that must all appear (case-insensitively) in the error message
// for the group to match; any matching group classifies the failure as a
// likely duplicate.
var duplicateMarkers = [][]string{
	{"duplicate"},
	{"already exists"},
	{"sku", "exist"},
	{"sku", "found"},
}

// IsDuplicateSKU classifies a platform error message as "this entity likely
// already exists remotely".
func IsDuplicateSKU(message string) bool {
	if message == genericCreateFailure {
		return true
	}
	lower := strings.ToLower(message)
	for _, group := range duplicateMarkers {
		matched := true
		for _, marker := range group {
			if !strings.Contains(lower, marker) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
