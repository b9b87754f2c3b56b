package naming

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain string unchanged",
			input: "Abbey Road",
			want:  "Abbey Road",
		},
		{
			name:  "separator run collapses to last separator",
			input: "Album , . Deluxe",
			want:  "Album. Deluxe",
		},
		{
			name:  "empty parentheses removed",
			input: "Title ( ) Extra",
			want:  "Title Extra",
		},
		{
			name:  "brackets with only separators removed",
			input: "Title [ - ] Extra",
			want:  "Title Extra",
		},
		{
			name:  "separator after open bracket dropped",
			input: "Title (/ Live)",
			want:  "Title (Live)",
		},
		{
			name:  "separator before close bracket dropped",
			input: "Title (Live /)",
			want:  "Title (Live)",
		},
		{
			name:  "whitespace runs collapse",
			input: "Too   many    spaces",
			want:  "Too many spaces",
		},
		{
			name:  "leading and trailing dots trimmed",
			input: ". Hidden Album .",
			want:  "Hidden Album",
		},
		{
			name:  "non-ascii letters preserved",
			input: "Café Tacvba (  )",
			want:  "Café Tacvba",
		},
		{
			name:  "cjk brackets with only separators removed",
			input: "曲名【 - 】",
			want:  "曲名",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	got := SafeFilename(`AC/DC: "Best *?" <of> |both\`)
	illegal := `/\:*?"<>|`
	if strings.ContainsAny(got, illegal) {
		t.Errorf("SafeFilename left illegal characters in %q", got)
	}
	if got != "AC／DC： ＂Best ＊？＂ ＜of＞ ｜both＼" {
		t.Errorf("Unexpected substitution result: %q", got)
	}
}

func TestSafeFilenameIdempotent(t *testing.T) {
	once := SafeFilename("AC/DC: Back in Black")
	twice := SafeFilename(once)
	if once != twice {
		t.Errorf("SafeFilename is not idempotent: %q != %q", once, twice)
	}
}

func TestCleanProducesSafeSegments(t *testing.T) {
	inputs := []string{
		"Artist / Album: Vol. 2",
		"What? (Deluxe * Edition)",
		`Back\slash | pipe`,
	}
	for _, in := range inputs {
		got := Clean(in)
		if strings.ContainsAny(got, `/\:*?"<>|`) {
			t.Errorf("Clean(%q) = %q still contains illegal characters", in, got)
		}
	}
}
