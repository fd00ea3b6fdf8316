package story

import (
	"errors"
	"testing"
)

func TestParseStory_Valid(t *testing.T) {
	s, err := ParseStory(`{"title": "The Dragon", "story": "Once upon a time..."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "The Dragon" || s.Story != "Once upon a time..." {
		t.Fatalf("unexpected story: %+v", s)
	}
}

func TestParseStory_SurroundingText(t *testing.T) {
	reply := "Here is your story:\n```json\n{\"title\": \"A {brace}\", \"story\": \"He said \\\"hi}\\\".\"}\n```"
	s, err := ParseStory(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "A {brace}" || s.Story != `He said "hi}".` {
		t.Fatalf("unexpected story: %+v", s)
	}
}

func TestParseStory_Rejects(t *testing.T) {
	cases := map[string]string{
		"no json":       "Once upon a time there was no JSON.",
		"unterminated":  `{"title": "x", "story": "y"`,
		"missing title": `{"story": "y"}`,
		"empty story":   `{"title": "x", "story": "  "}`,
		"extra field":   `{"title": "x", "story": "y", "moral": "z"}`,
		"wrong type":    `{"title": 1, "story": "y"}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStory(reply)
			if !errors.Is(err, ErrInvalidStory) {
				t.Fatalf("expected ErrInvalidStory, got %v", err)
			}
			var ce *ContractError
			if !errors.As(err, &ce) || len(ce.Problems) == 0 {
				t.Fatalf("expected problems to be listed, got %v", err)
			}
		})
	}
}

func TestParseStory_SkipsBracesBeforeObject(t *testing.T) {
	cases := map[string]string{
		"placeholder":   `Here {draft}: {"title": "T", "story": "S"}`,
		"empty object":  `Template {} then {"title": "T", "story": "S"}`,
		"unclosed open": `Oops { here is it: {"title": "T", "story": "S"}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ParseStory(reply)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Title != "T" || s.Story != "S" {
				t.Fatalf("unexpected story: %+v", s)
			}
		})
	}
}
