package domain

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrCreateIsLazy(t *testing.T) {
	now := fixedNow(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry()

	created, isNew, err := registry.GetOrCreate("ana", "Ana", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !isNew {
		t.Fatal("expected first sighting to create")
	}
	if created.Sheet == nil || len(created.Sheet) != 0 {
		t.Fatalf("expected empty sheet, got %v", created.Sheet)
	}
	if created.Skills == nil || len(created.Skills) != 0 {
		t.Fatalf("expected empty skills, got %v", created.Skills)
	}

	again, isNew, err := registry.GetOrCreate("ana", "Different Name", now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if isNew {
		t.Fatal("expected existing participant to be returned")
	}
	if again.DisplayName != "Ana" {
		t.Fatalf("expected original display name, got %q", again.DisplayName)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 participant, got %d", registry.Len())
	}
}

func TestGetOrCreateValidation(t *testing.T) {
	registry := NewRegistry()
	if _, _, err := registry.GetOrCreate(" ", "Ana", nil); !errors.Is(err, ErrEmptyParticipantID) {
		t.Fatalf("expected ErrEmptyParticipantID, got %v", err)
	}
	if _, _, err := registry.GetOrCreate("ana", " ", nil); !errors.Is(err, ErrEmptyDisplayName) {
		t.Fatalf("expected ErrEmptyDisplayName, got %v", err)
	}
}

func TestApplySkillDeltaCreatesBaseline(t *testing.T) {
	now := fixedNow(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry()
	if _, _, err := registry.GetOrCreate("ana", "Ana", now); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := registry.ApplySkillDelta("ana", "Stealth", 2, now); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	if err := registry.ApplySkillDelta("ana", "Stealth", 1, now); err != nil {
		t.Fatalf("apply delta: %v", err)
	}

	participant, ok := registry.Get("ana")
	if !ok {
		t.Fatal("expected participant")
	}
	if participant.Skills["Stealth"] != 3 {
		t.Fatalf("expected Stealth 3, got %d", participant.Skills["Stealth"])
	}
}

func TestApplySkillDeltaUnknownParticipant(t *testing.T) {
	registry := NewRegistry()
	if err := registry.ApplySkillDelta("ghost", "Stealth", 1, nil); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestRegistryCloneIsDeep(t *testing.T) {
	now := fixedNow(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry()
	if _, _, err := registry.GetOrCreate("ana", "Ana", now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := registry.ApplySkillDelta("ana", "Stealth", 1, now); err != nil {
		t.Fatalf("apply delta: %v", err)
	}

	clone := registry.Clone()
	if err := clone.ApplySkillDelta("ana", "Stealth", 5, now); err != nil {
		t.Fatalf("apply delta to clone: %v", err)
	}

	original, _ := registry.Get("ana")
	if original.Skills["Stealth"] != 1 {
		t.Fatalf("expected original untouched at 1, got %d", original.Skills["Stealth"])
	}
}
