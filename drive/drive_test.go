package drive

import (
	"context"
	"fmt"
	"testing"
)

func TestExtractID(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"https://drive.google.com/file/d/ABCDEFGHIJ0123456789/view?usp=sharing", "ABCDEFGHIJ0123456789"},
		{"https://drive.google.com/open?id=ABCDEFGHIJ0123456789", "ABCDEFGHIJ0123456789"},
		{"https://drive.google.com/uc?id=ABCDEFGHIJ0123456789&export=download", "ABCDEFGHIJ0123456789"},
		{"ABCDEFGHIJ0123456789", "ABCDEFGHIJ0123456789"},
		{"plain-id-ABCDEFGHIJ0123456789", "plain-id-ABCDEFGHIJ0123456789"},
		{"  ABCDEFGHIJ0123456789  ", "ABCDEFGHIJ0123456789"},
		{"short", ""},
		{"", ""},
		{"https://example.com/no-id-here", ""},
		{"https://drive.google.com/file/d/tooshort/view", ""},
	}
	for _, tc := range cases {
		if got := ExtractID(tc.in); got != tc.expected {
			t.Fatalf("ExtractID(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestNormalizeIDs_FirstSeenOrderDedupe(t *testing.T) {
	a := "AAAAAAAAAAAAAAAAAAAA"
	b := "BBBBBBBBBBBBBBBBBBBB"
	c := "CCCCCCCCCCCCCCCCCCCC"

	got := NormalizeIDs([]string{a, b, a, "junk", c, b})
	want := []string{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNormalizeIDs_URLAndRawMixDedupe(t *testing.T) {
	id := "ABCDEFGHIJ0123456789"
	got := NormalizeIDs([]string{
		id,
		"https://drive.google.com/file/d/" + id + "/view",
	})
	if len(got) != 1 || got[0] != id {
		t.Fatalf("URL and raw forms of the same id should dedupe, got %v", got)
	}
}

func TestSplitIDList(t *testing.T) {
	got := SplitIDList(" a , ,b,, c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if SplitIDList("") != nil {
		t.Fatalf("empty input should split to nil")
	}
}

type fakeDownloader struct {
	files map[string][]byte
}

func (f *fakeDownloader) Download(_ context.Context, fileID string) ([]byte, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("permission denied for %s", fileID)
	}
	return data, nil
}

func TestDownloadImages_SkipsFailuresSilently(t *testing.T) {
	dl := &fakeDownloader{files: map[string][]byte{
		"AAAAAAAAAAAAAAAAAAAA": []byte("img-a"),
		"CCCCCCCCCCCCCCCCCCCC": []byte("img-c"),
	}}

	got := DownloadImages(context.Background(), dl, []string{
		"AAAAAAAAAAAAAAAAAAAA",
		"BBBBBBBBBBBBBBBBBBBB", // fails, must be skipped
		"",
		"CCCCCCCCCCCCCCCCCCCC",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 downloaded images, got %d", len(got))
	}
	if string(got[0]) != "img-a" || string(got[1]) != "img-c" {
		t.Fatalf("unexpected download contents: %q, %q", got[0], got[1])
	}
}
