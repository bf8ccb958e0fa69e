package progression

import (
	"reflect"
	"testing"
)

func TestMarkupPolicyDecide(t *testing.T) {
	policy := NewMarkupPolicy()

	tests := []struct {
		name      string
		narration string
		want      []SkillDelta
	}{
		{
			name:      "no markup",
			narration: "The hall is silent.",
			want:      nil,
		},
		{
			name:      "single tag",
			narration: "You slip on loose stone. [Skill Climbing +1] The ledge holds.",
			want:      []SkillDelta{{Skill: "Climbing", Delta: 1}},
		},
		{
			name:      "multiple tags",
			narration: "[Skill Stealth +1] A guard stirs. [Skill Perception +2]",
			want: []SkillDelta{
				{Skill: "Stealth", Delta: 1},
				{Skill: "Perception", Delta: 2},
			},
		},
		{
			name:      "repeated skill accumulates",
			narration: "[Skill Stealth +1] and later [Skill Stealth +1]",
			want: []SkillDelta{
				{Skill: "Stealth", Delta: 1},
				{Skill: "Stealth", Delta: 1},
			},
		},
		{
			name:      "zero delta ignored",
			narration: "[Skill Stealth +0]",
			want:      nil,
		},
		{
			name:      "negative markup not matched",
			narration: "[Skill Stealth -1]",
			want:      nil,
		},
		{
			name:      "malformed tag ignored",
			narration: "[Skill Sleight of Hand +1]",
			want:      nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Decide(tc.narration, "some action")
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("deltas = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNopPolicyDecide(t *testing.T) {
	if got := (NopPolicy{}).Decide("[Skill Stealth +1]", "sneak"); got != nil {
		t.Fatalf("expected no deltas, got %v", got)
	}
}
