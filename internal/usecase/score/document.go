package score

import "strings"

// descriptionMarkers lists the label variants indexed documents use to
// introduce the free-text description. Checked in order; earlier entries
// are the more common forms.
var descriptionMarkers = []string{
	"Description: ",
	"Description:",
	"description: ",
	"description:",
	"Description ",
	"description ",
}

// extractDescription pulls the free-text description out of a stored
// document. Documents are flat "Label: value" concatenations, so the
// description is everything after its marker. Returns ok=false when no
// marker variant is present and the structural fallback also fails.
func extractDescription(document string) (string, bool) {
	for _, marker := range descriptionMarkers {
		if _, after, found := strings.Cut(document, marker); found {
			return strings.TrimSpace(after), true
		}
	}

	// Structural fallback for malformed documents: take the tail after
	// the category block if one exists.
	if _, after, found := strings.Cut(document, "Category:"); found {
		if _, tail, ok := strings.Cut(after, "Description"); ok {
			return strings.TrimSpace(strings.TrimLeft(tail, ": .")), true
		}
	}
	return "", false
}
