package supabase

import (
	"testing"
	"time"
)

func TestObjectPath(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := ObjectPath("uploads", "image.jpg", now)
	want := "uploads/2024-01/1704067200000_image.jpg"
	if got != want {
		t.Fatalf("ObjectPath = %q, want %q", got, want)
	}
}

func TestObjectPathZeroPadsMonth(t *testing.T) {
	now := time.Date(2025, time.September, 15, 12, 30, 0, 0, time.UTC)
	got := ObjectPath("uploads", "a.png", now)
	if want := "uploads/2025-09/"; got[:len(want)] != want {
		t.Fatalf("ObjectPath = %q, want prefix %q", got, want)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	c := NewStorageClient("https://project.example.co", "anon-key")

	path := "uploads/2024-01/1704067200000_image.jpg"
	url := c.PublicURL("todos", path)

	if got := PathFromPublicURL(url, "todos"); got != path {
		t.Fatalf("PathFromPublicURL = %q, want %q", got, path)
	}
}

func TestPathFromPublicURLMissingMarker(t *testing.T) {
	cases := []string{
		"",
		"https://project.example.co/other/path/image.jpg",
		"https://project.example.co/storage/v1/object/public/other-bucket/file.jpg",
	}
	for _, url := range cases {
		if got := PathFromPublicURL(url, "todos"); got != "" {
			t.Fatalf("PathFromPublicURL(%q) = %q, want empty", url, got)
		}
	}
}
