package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want Kind
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", KindVideo},
		{"https://youtu.be/dQw4w9WgXcQ", KindVideo},
		{"https://www.YouTube.com/embed/abc", KindVideo},
		{"https://books.google.com/books?id=zyTCAlFPjgYC", KindDocument},
		{"https://BOOKS.GOOGLE.COM/books?id=x", KindDocument},
		{"https://example.com/article", KindOther},
		{"https://google.com/books", KindOther},
		{"", KindOther},
		// Near-malformed input must classify, not error
		{"youtube.com/watch?v=###", KindVideo},
		{"not a url at all", KindOther},
	}

	for _, tt := range tests {
		if got := Classify(tt.url); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestKindPlatform(t *testing.T) {
	if got := KindVideo.Platform(); got != "YouTube" {
		t.Errorf("video platform = %q", got)
	}
	if got := KindDocument.Platform(); got != "Google Books" {
		t.Errorf("document platform = %q", got)
	}
	if got := KindOther.Platform(); got != "Unknown" {
		t.Errorf("other platform = %q", got)
	}
	if got := Kind("bogus").Platform(); got != "Unknown" {
		t.Errorf("bogus platform = %q", got)
	}
}
