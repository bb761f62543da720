package combo

import (
	"fmt"
	"strings"

	"stressdost/internal/slots"
)

// singleSlotPrompts are the hand-mapped phrasings used when only one piece of
// a combo is still missing.
var singleSlotPrompts = map[slots.Ref]string{
	{Domain: "distractions", Slot: "friend_name"}:            "Which friend distracts you the most (if any)?",
	{Domain: "social_comparison", Slot: "comparison_person"}: "Who do you usually compare yourself with (if you do compare)?",
	{Domain: "social_comparison", Slot: "comparison_gap"}:    "When you compare, does the gap feel small or big?",
}

// multiSlotLines are the numbered prompt lines for the enumerated multi-part
// form. Pairs without an entry fall back to a generic "- domain.slot" line.
var multiSlotLines = map[slots.Ref]string{
	{Domain: "distractions", Slot: "friend_name"}:            "1) Friend who distracts you most (or say 'none')",
	{Domain: "social_comparison", Slot: "comparison_person"}: "2) Person you compare yourself to (or say 'no one')",
	{Domain: "social_comparison", Slot: "comparison_gap"}:    "3) Gap feels small or big",
}

const emotionProbeLine = "4) Emotion right now: pressure / panic / self_doubt / motivation"

// Compose builds the combo prompt asking only for the still-missing pieces.
// It returns ok=false when the combo violates a forbidden category pairing or
// has nothing left to ask, in which case the caller must treat the combo as
// not offered.
func Compose(comboID string, filled *slots.Filled) (string, bool) {
	spec, ok := Get(comboID)
	if !ok {
		return "", false
	}
	if forbidden(spec) {
		return "", false
	}

	missing := missingSlots(spec, filled)
	if len(missing) == 0 {
		return "", false
	}

	if len(missing) == 1 {
		if prompt, mapped := singleSlotPrompts[missing[0]]; mapped {
			return prompt, true
		}
		return "Can you share one short detail about that?", true
	}

	lines := make([]string, 0, len(missing)+1)
	for _, ref := range missing {
		if line, mapped := multiSlotLines[ref]; mapped {
			lines = append(lines, line)
		} else {
			lines = append(lines, fmt.Sprintf("- %s.%s", ref.Domain, ref.Slot))
		}
	}
	if spec.EmotionProbe {
		lines = append(lines, emotionProbeLine)
	}

	return "Quick check so I can personalize things:\n" + strings.Join(lines, "\n"), true
}
