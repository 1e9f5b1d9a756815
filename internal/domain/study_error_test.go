package domain

import (
	"strings"
	"testing"
)

func TestStudyErrorValidate(t *testing.T) {
	t.Parallel()

	valid := StudyError{
		ID:         "i-abc123",
		Subject:    "Fluxo de Caixa",
		Discipline: "Contabilidade",
		Resolution: "O método direto exige a conciliação entre lucro líquido e fluxo de caixa.",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := valid
	invalid.ID = ""
	if err := invalid.Validate(); err != ErrStudyErrorIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrStudyErrorIDEmpty, err)
	}
}

func TestHasUsableResolution(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		resolution string
		want       bool
	}{
		{"empty", "", false},
		{"below minimum", "muito curta", false},
		{"exactly at minimum", strings.Repeat("a", MinResolutionLen), true},
		{"above minimum", strings.Repeat("a", MinResolutionLen+1), true},
		{"accents count as single characters", strings.Repeat("ç", MinResolutionLen), true},
		{"accents below minimum", strings.Repeat("ç", MinResolutionLen-1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := StudyError{ID: "i-1", Resolution: tc.resolution}
			if got := e.HasUsableResolution(); got != tc.want {
				t.Errorf("HasUsableResolution(%q) = %v, want %v", tc.resolution, got, tc.want)
			}
		})
	}
}
