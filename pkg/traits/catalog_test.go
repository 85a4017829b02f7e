package traits

import (
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantHit   bool
		wantMatch Match
	}{
		{
			name:      "hpi single word",
			query:     "What is Sarah's ambition score?",
			wantHit:   true,
			wantMatch: Match{Trait: "Ambition", AssessmentType: "HPI"},
		},
		{
			name:      "hpi multiword",
			query:     "show me her interpersonal sensitivity",
			wantHit:   true,
			wantMatch: Match{Trait: "Interpersonal Sensitivity", AssessmentType: "HPI"},
		},
		{
			name:      "hds spelling variant",
			query:     "how sceptical is Ahmed?",
			wantHit:   true,
			wantMatch: Match{Trait: "Skeptical", AssessmentType: "HDS"},
		},
		{
			name:      "mvpi variant",
			query:     "rank everyone by altruism",
			wantHit:   true,
			wantMatch: Match{Trait: "Altruistic", AssessmentType: "MVPI"},
		},
		{
			name:      "idi multiword",
			query:     "who scores highest on gaining stature?",
			wantHit:   true,
			wantMatch: Match{Trait: "Gaining Stature", AssessmentType: "IDI"},
		},
		{
			name:      "case insensitive",
			query:     "PRUDENCE across the team",
			wantHit:   true,
			wantMatch: Match{Trait: "Prudence", AssessmentType: "HPI"},
		},
		{
			name:    "substring does not match inside a word",
			query:   "the empowerment workshop",
			wantHit: false,
		},
		{
			name:    "no trait vocabulary",
			query:   "who reports to the VP of Engineering?",
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.query)
			if ok != tt.wantHit {
				t.Fatalf("Extract(%q) hit = %v, want %v", tt.query, ok, tt.wantHit)
			}
			if ok && got != tt.wantMatch {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.query, got, tt.wantMatch)
			}
		})
	}
}

func TestExtractPrefersLongestSurface(t *testing.T) {
	// "learning approach" must win even though "approach" alone is not
	// in the vocabulary and "learning" could be a partial lead-in.
	got, ok := Extract("compare their learning approach results")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Trait != "Learning Approach" || got.AssessmentType != "HPI" {
		t.Errorf("got %+v, want Learning Approach / HPI", got)
	}
}

func TestKnown(t *testing.T) {
	tests := []struct {
		trait string
		want  bool
	}{
		{"Ambition", true},
		{"ambition", true},
		{"Irreproachability", true},
		{"Charisma", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Known(tt.trait); got != tt.want {
			t.Errorf("Known(%q) = %v, want %v", tt.trait, got, tt.want)
		}
	}
}
