package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# course video list
https://www.youtube.com/watch?v=dQw4w9WgXcQ

https://books.google.com/books?id=zyTCAlFPjgYC
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	urls, err := readURLs(path)
	if err != nil {
		t.Fatalf("readURLs failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("Unexpected first URL: %s", urls[0])
	}
}

func TestReadURLs_MissingFile(t *testing.T) {
	if _, err := readURLs("/nonexistent/urls.txt"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "www.youtube.com_watch_v-abc"},
		{"http://books.google.com/books?id=xyz&hl=en", "books.google.com_books_id-xyz_hl-en"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
