package catalog

import "strings"

// CombinedText builds the single text blob used as embedding input. Fields
// are joined in a fixed order with single spaces; absent fields contribute
// empty strings so the output shape is stable for any input. The result is
// not persisted anywhere.
func CombinedText(d ProductDocument) string {
	names := make([]string, len(d.Configurations))
	for i, c := range d.Configurations {
		names[i] = c.DisplayName
	}

	parts := []string{
		d.Title,
		d.Description,
		d.CategoryTitle,
		d.CategoryDesc,
		d.ParentTitle,
		d.CustomCategory,
		strings.Join(d.Tags, " "),
		strings.Join(names, " "),
	}
	return strings.Join(parts, " ")
}
