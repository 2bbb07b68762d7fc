package classify

import "strings"

// Kind tags a resource by the platform its URL points at.
type Kind string

const (
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// Classify maps a URL to a resource kind by host substring matching. It is
// total: any URL that matches no known pattern is KindOther. Matching is
// plain substring search rather than strict URL parsing, so near-malformed
// input still classifies instead of erroring.
func Classify(rawURL string) Kind {
	lower := strings.ToLower(rawURL)

	switch {
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return KindVideo
	case strings.Contains(lower, "books.google.com"):
		return KindDocument
	default:
		return KindOther
	}
}

// Platform returns the display name of the platform behind a kind.
func (k Kind) Platform() string {
	switch k {
	case KindVideo:
		return "YouTube"
	case KindDocument:
		return "Google Books"
	default:
		return "Unknown"
	}
}
