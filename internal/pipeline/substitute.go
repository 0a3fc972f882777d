package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvedPlaceholder indicates a placeholder could not be replaced by
// its rendered image.
var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

// Substitute replaces each task's placeholder with its Replacement, exactly
// once. Every task must carry a Replacement and its placeholder must occur
// exactly once in doc.
func Substitute(doc string, tasks []RenderTask) (string, error) {
	for _, t := range tasks {
		if t.Replacement == "" {
			return "", fmt.Errorf("%w: %s has no rendered image", ErrUnresolvedPlaceholder, t.Placeholder)
		}
		if !strings.Contains(doc, t.Placeholder) {
			return "", fmt.Errorf("%w: %s not found in document", ErrUnresolvedPlaceholder, t.Placeholder)
		}
		doc = strings.Replace(doc, t.Placeholder, t.Replacement, 1)
	}

	for _, t := range tasks {
		if strings.Contains(doc, t.Placeholder) {
			return "", fmt.Errorf("%w: %s appears more than once", ErrUnresolvedPlaceholder, t.Placeholder)
		}
	}
	return doc, nil
}
