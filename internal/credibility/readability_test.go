package credibility

import "testing"

func TestFleschKincaidGradeSimpleText(t *testing.T) {
	grade, err := FleschKincaidGrade("The cat sat on the mat. The dog ran to the park.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade > 6 {
		t.Errorf("expected low grade for simple text, got %v", grade)
	}
}

func TestFleschKincaidGradeComplexText(t *testing.T) {
	grade, err := FleschKincaidGrade(
		"Notwithstanding considerable epistemological disagreement, contemporary macroeconomic historiography demonstrates unambiguously deteriorating institutional accountability.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade < 16 {
		t.Errorf("expected high grade for complex text, got %v", grade)
	}
}

func TestFleschKincaidGradeDegenerate(t *testing.T) {
	for _, text := range []string{"", "   ", "?!...", "12 34 56"} {
		if _, err := FleschKincaidGrade(text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestFleschKincaidGradeNoTerminatorIsOneSentence(t *testing.T) {
	if _, err := FleschKincaidGrade("a headline without punctuation"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"breaking", 2},
		{"according", 3},
		{"exercise", 3},
		{"table", 2},
		{"a", 1},
		{"rhythm", 1},
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
