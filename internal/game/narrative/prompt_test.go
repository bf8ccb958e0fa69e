package narrative

import (
	"strings"
	"testing"
)

func TestSystemPromptIncludesGameState(t *testing.T) {
	req := Request{
		Scene: "A collapsing bridge.",
		Round: 3,
		Order: []OrderEntry{
			{Name: "Ana"},
			{Name: "Brynn", Current: true},
		},
		Characters: []CharacterSummary{
			{
				Name:   "Ana",
				Sheet:  map[string]string{"Strength": "2", "Agility": "3"},
				Skills: map[string]int{"Stealth": 1, "Climbing": 2},
			},
		},
	}

	prompt := systemPrompt(req)

	if !strings.Contains(prompt, "You are the Dungeon Master") {
		t.Fatal("expected DM instructions")
	}
	if !strings.Contains(prompt, "CURRENT SCENE: A collapsing bridge.") {
		t.Fatalf("expected scene line, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "ROUND: 3") {
		t.Fatal("expected round line")
	}
	if !strings.Contains(prompt, "1. Ana") || !strings.Contains(prompt, "2. Brynn (CURRENT)") {
		t.Fatalf("expected turn order with current marker, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Sheet={Agility: 3, Strength: 2}") {
		t.Fatalf("expected sorted sheet, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Skills={Climbing: 2, Stealth: 1}") {
		t.Fatalf("expected sorted skills, got:\n%s", prompt)
	}
}

func TestSystemPromptOmitsEmptySections(t *testing.T) {
	prompt := systemPrompt(Request{Scene: "The adventure begins...", Round: 1})

	if strings.Contains(prompt, "TURN ORDER") {
		t.Fatal("expected no turn order section for empty order")
	}
	if strings.Contains(prompt, "ALL CHARACTERS") {
		t.Fatal("expected no characters section for empty registry")
	}
}

func TestActLine(t *testing.T) {
	if got := actLine("Ana", "scout the hall"); got != "Ana acts: scout the hall" {
		t.Fatalf("act line = %q", got)
	}
}
