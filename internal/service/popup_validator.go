package service

import (
	"regexp"
	"strings"

	"stressdost/internal/slots"
)

// Chat-style popups may only impersonate people the student actually named.

var familyTags = []string{"mom", "mother", "dad", "father", "brother", "parents", "family"}

var familyPrefixes = []string{
	"mom:", "mummy:", "dad:", "papa:", "father:", "brother:", "bhai:", "parents:", "family:",
}

var namePrefixPattern = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9 _\-]{1,30})\s*:`)

func hasFamilyMember(filled *slots.Filled) bool {
	member, _ := filled.Get("family_pressure", "family_member")
	member = strings.ToLower(strings.TrimSpace(member))
	for _, tag := range familyTags {
		if strings.Contains(member, tag) {
			return true
		}
	}
	return false
}

func allowedFriendNames(filled *slots.Filled) map[string]bool {
	names := map[string]bool{"friend": true, "friends": true}
	if v, ok := filled.Get("distractions", "friend_name"); ok && strings.TrimSpace(v) != "" {
		names[strings.ToLower(strings.TrimSpace(v))] = true
	}
	if v, ok := filled.Get("social_comparison", "comparison_person"); ok && strings.TrimSpace(v) != "" {
		names[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return names
}

// ValidatePopupMessage rejects chat-prefixed messages that name a family
// member or friend the profile never mentioned.
func ValidatePopupMessage(message string, filled *slots.Filled) bool {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return false
	}
	if filled == nil {
		filled = slots.NewFilled()
	}

	stripped := strings.ToLower(strings.TrimLeft(msg, " \t"))
	for _, prefix := range familyPrefixes {
		if strings.HasPrefix(stripped, prefix) {
			if !hasFamilyMember(filled) {
				return false
			}
			break
		}
	}

	if m := namePrefixPattern.FindStringSubmatch(msg); m != nil {
		prefix := strings.ToLower(strings.TrimSpace(m[1]))
		isFamily := false
		for _, fam := range familyPrefixes {
			if prefix == strings.TrimSuffix(fam, ":") {
				isFamily = true
				break
			}
		}
		if !isFamily && !allowedFriendNames(filled)[prefix] {
			return false
		}
	}

	for _, line := range strings.Split(msg, "\n") {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// NormalizeTwoLines reshapes arbitrary text into exactly two lines within the
// total and per-line character budgets. Single-sentence input gets split at a
// sentence break, then at the word midpoint, then duplicated as a last
// resort.
func NormalizeTwoLines(msg string, maxTotal, maxLine int) string {
	msg = strings.TrimSpace(msg)
	var lines []string
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		cleaned := strings.NewReplacer("?", ".", "!", ".").Replace(msg)
		var parts []string
		for _, part := range strings.Split(cleaned, ".") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) >= 2 {
			lines = []string{parts[0], parts[1]}
		} else {
			words := strings.Fields(msg)
			if len(words) >= 6 {
				mid := len(words) / 2
				if mid < 3 {
					mid = 3
				}
				if mid > len(words)-3 {
					mid = len(words) - 3
				}
				lines = []string{strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")}
			} else {
				lines = []string{msg, msg}
			}
		}
	}

	line1 := strings.TrimRight(truncateRunes(lines[0], maxLine), " ")
	line2 := strings.TrimRight(truncateRunes(lines[1], maxLine), " ")

	joined := line1 + "\n" + line2
	if overflow := len(joined) - maxTotal; overflow > 0 {
		keep := len(line2) - overflow
		if keep < 0 {
			keep = 0
		}
		line2 = strings.TrimRight(line2[:keep], " ")
		joined = line1 + "\n" + line2
	}
	if overflow := len(joined) - maxTotal; overflow > 0 {
		keep := len(line1) - overflow
		if keep < 0 {
			keep = 0
		}
		line1 = strings.TrimRight(line1[:keep], " ")
		joined = line1 + "\n" + line2
	}
	return joined
}
