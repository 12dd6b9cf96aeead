package logger

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short stays", in: "hello", limit: 10, want: "hello"},
		{name: "exact stays", in: "hello", limit: 5, want: "hello"},
		{name: "long truncated", in: "hello world", limit: 5, want: "hello..."},
		{name: "trimmed first", in: "  hello  ", limit: 10, want: "hello"},
		{name: "zero limit", in: "hello", limit: 0, want: ""},
		{name: "multibyte", in: "héllo wörld", limit: 5, want: "héllo..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
