package story

import (
	"strconv"
)

const (
	titleField       = "title"
	descriptionField = "description"

	// DefaultTitle replaces a missing title.
	DefaultTitle = "N/A"
	// DefaultDescription replaces a missing description.
	DefaultDescription = ""
)

// storyMetadata is the typed view of a match's metadata.
// A nil field means the index returned no usable value for it.
type storyMetadata struct {
	Title       *string
	Description *string
}

func decodeMetadata(md map[string]any) storyMetadata {
	return storyMetadata{
		Title:       scalarString(md, titleField),
		Description: scalarString(md, descriptionField),
	}
}

func (m storyMetadata) title() string {
	if m.Title == nil {
		return DefaultTitle
	}
	return *m.Title
}

func (m storyMetadata) description() string {
	if m.Description == nil {
		return DefaultDescription
	}
	return *m.Description
}

// scalarString renders a scalar metadata value as text.
// Lists, maps and nulls count as absent.
func scalarString(md map[string]any, key string) *string {
	raw, ok := md[key]
	if !ok {
		return nil
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil
	}
	return &s
}
