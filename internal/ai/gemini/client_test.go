package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: nil},
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						nil,
						{Text: "  first part  "},
						{Text: ""},
						{Text: "second part"},
					},
				},
			},
		},
	}

	got := extractText(resp)
	want := "first part\nsecond part"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := extractText(nil); got != "" {
		t.Fatalf("expected empty string for nil response, got %q", got)
	}

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{}}
	if got := extractText(resp); got != "" {
		t.Fatalf("expected empty string for empty candidates, got %q", got)
	}
}
