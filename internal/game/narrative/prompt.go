package narrative

import (
	"fmt"
	"sort"
	"strings"
)

const dmPrompt = `You are the Dungeon Master for a narrative-focused, play-by-post RPG.
The game emphasizes storytelling, uses light dice rolling for uncertainty, and allows dynamic, in-play character creation. Only one player acts at a time.

RULES:
1. Announce whose turn it is to act.
2. Only the active player may act; ignore others. Unless it is a totally new player then they can join at any time.
3. Dynamic characters: attributes, skills, inventory created as needed.
4. Default roll: d6 + relevant attribute + relevant skill.
5. Success: story progresses; Failure: skill improves +1 and story progresses with complication. Record skill improvements as [Skill Name +1] markup in your narration.
6. Combat/conflict is narrative-first.
7. Keep concise narration (2-6 paragraphs), immersive and fair.
8. Track only the last action for status.
9. If a player times out, resolve turn conservatively.
10. Keep status posts short.
11. Don't fill in the blanks too much, unless its necessary for the situation. Let the players dictate their actions and sayings more.
12. Focus more on describing the surroundings and what is happening around the players, and a bit less about what the players do. EXCEPTION: if players input is very brief it is okay to make it more expressive.
13. Try to limit the amount of things that happen in one of your post. Make the players feel they are the heroes of the story and their actions and decisions matter more.`

// systemPrompt renders the DM instructions plus the current game state. The
// state section is rebuilt every call so the generator always sees the
// latest scene, order, and character sheets.
func systemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(dmPrompt)
	b.WriteString("\n\nCURRENT GAME STATE:\n")
	fmt.Fprintf(&b, "CURRENT SCENE: %s\n", req.Scene)
	fmt.Fprintf(&b, "\nROUND: %d", req.Round)

	if len(req.Order) > 0 {
		b.WriteString("\n\nTURN ORDER:")
		for i, entry := range req.Order {
			marker := ""
			if entry.Current {
				marker = " (CURRENT)"
			}
			fmt.Fprintf(&b, "\n  %d. %s%s", i+1, entry.Name, marker)
		}
	}

	if len(req.Characters) > 0 {
		b.WriteString("\n\nALL CHARACTERS:")
		for _, character := range req.Characters {
			fmt.Fprintf(&b, "\n  %s: Sheet={%s}, Skills={%s}",
				character.Name,
				formatSheet(character.Sheet),
				formatSkills(character.Skills),
			)
		}
	}

	return b.String()
}

// actLine renders one action the way both history pairs and the live
// submission are phrased.
func actLine(actor, action string) string {
	return fmt.Sprintf("%s acts: %s", actor, action)
}

func formatSheet(sheet map[string]string) string {
	if len(sheet) == 0 {
		return ""
	}
	keys := make([]string, 0, len(sheet))
	for key := range sheet {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, sheet[key]))
	}
	return strings.Join(parts, ", ")
}

func formatSkills(skills map[string]int) string {
	if len(skills) == 0 {
		return ""
	}
	keys := make([]string, 0, len(skills))
	for key := range skills {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", key, skills[key]))
	}
	return strings.Join(parts, ", ")
}
