package client

import (
	"strings" // Splitting and joining

	"freelancer_directory/internal/domain" // Child record types
)

// JoinNames renders names as comma-separated text for editing
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}

// SkillNames lists the skill names of skillsets
func SkillNames(skillsets []domain.Skillset) []string {
	names := make([]string, 0, len(skillsets))
	for _, s := range skillsets {
		names = append(names, s.SkillName)
	}
	return names
}

// HobbyNames lists the hobby names of hobbies
func HobbyNames(hobbies []domain.Hobby) []string {
	names := make([]string, 0, len(hobbies))
	for _, h := range hobbies {
		names = append(names, h.HobbyName)
	}
	return names
}

// splitNames splits comma-separated text, trimming entries and dropping blanks
func splitNames(text string) []string {
	parts := strings.Split(text, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SplitSkillsets turns edited text back into skillset records
func SplitSkillsets(text string) []domain.Skillset {
	names := splitNames(text)
	skillsets := make([]domain.Skillset, len(names))
	for i, name := range names {
		skillsets[i] = domain.Skillset{SkillName: name}
	}
	return skillsets
}

// SplitHobbies turns edited text back into hobby records
func SplitHobbies(text string) []domain.Hobby {
	names := splitNames(text)
	hobbies := make([]domain.Hobby, len(names))
	for i, name := range names {
		hobbies[i] = domain.Hobby{HobbyName: name}
	}
	return hobbies
}
