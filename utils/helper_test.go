package utils

import "testing"

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{`informe:final*?`, "informe_final_"},
		{`a/b\c`, "a_b_c"},
		{"  sin cambios  ", "sin cambios"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SafeFilename(tc.in); got != tc.expected {
			t.Fatalf("SafeFilename(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestSafeFilenameSegment(t *testing.T) {
	if got := SafeFilenameSegment("Planta Norte 2"); got != "Planta_Norte_2" {
		t.Fatalf("expected Planta_Norte_2, got %q", got)
	}
}
