// Package progression maps resolved narration onto skill changes for the
// acting participant. The mapping is a pluggable strategy; the engine only
// sees deltas.
package progression

import (
	"regexp"
	"strconv"
)

// SkillDelta is one skill adjustment decided by a policy.
type SkillDelta struct {
	Skill string
	Delta int
}

// Policy decides skill adjustments from the generated narration and the
// action that produced it. Policies are pure: no I/O, no state.
type Policy interface {
	Decide(narration, action string) []SkillDelta
}

// skillMarkup matches improvement markup embedded in narration, e.g.
// "[Skill Stealth +1]".
var skillMarkup = regexp.MustCompile(`\[Skill (\w+) \+(\d+)\]`)

// MarkupPolicy extracts skill improvements from inline narration markup.
// The generator is instructed to emit one tag per improved skill.
type MarkupPolicy struct{}

// NewMarkupPolicy creates the markup-driven progression policy.
func NewMarkupPolicy() MarkupPolicy {
	return MarkupPolicy{}
}

// Decide returns one delta per markup tag found, in narration order. Tags
// for the same skill accumulate.
func (MarkupPolicy) Decide(narration, _ string) []SkillDelta {
	matches := skillMarkup.FindAllStringSubmatch(narration, -1)
	if len(matches) == 0 {
		return nil
	}

	deltas := make([]SkillDelta, 0, len(matches))
	for _, match := range matches {
		delta, err := strconv.Atoi(match[2])
		if err != nil || delta == 0 {
			continue
		}
		deltas = append(deltas, SkillDelta{Skill: match[1], Delta: delta})
	}
	return deltas
}

// NopPolicy ignores narration entirely. Useful when progression is managed
// out of band.
type NopPolicy struct{}

// Decide always returns no deltas.
func (NopPolicy) Decide(_, _ string) []SkillDelta {
	return nil
}
