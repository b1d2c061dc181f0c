package usecase

import (
	"sort"
	"strings"
)

// DefaultSection is the bucket for lines preceding any recognized heading.
const DefaultSection = "HEADER"

// sectionHeadingMaxLen bounds how long a line may be and still count as a
// section heading.
const sectionHeadingMaxLen = 50

// SectionMap maps a section name to the text assigned to it. When the same
// heading appears twice the later occurrence replaces the earlier one;
// intentional, see the classifier tests.
type SectionMap map[string]string

// Names returns the section names present, sorted for stable logging.
func (m SectionMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type sectionRule struct {
	Name     string
	Keywords []string
}

// sectionRules is an ordered list so that the first matching section within a
// line always wins, independent of map iteration order.
var sectionRules = []sectionRule{
	{"SUMMARY", []string{"summary", "objective", "profile", "about me", "professional summary"}},
	{"EXPERIENCE", []string{"experience", "work history", "employment", "work experience", "professional experience"}},
	{"EDUCATION", []string{"education", "academic", "degree", "university", "college"}},
	{"SKILLS", []string{"skills", "technical skills", "competencies", "expertise", "technologies"}},
	{"PROJECTS", []string{"projects", "portfolio", "work samples"}},
	{"CERTIFICATIONS", []string{"certifications", "certificates", "credentials"}},
	{"AWARDS", []string{"awards", "honors", "achievements"}},
}

// IdentifySections walks the text line by line, keeping a current section
// (initially HEADER). A short line containing a section keyword reassigns the
// current section and starts a new buffer with that heading line; other lines
// accumulate into the current buffer. Purely diagnostic: the optimizer call
// receives the raw full text, not this split.
func IdentifySections(text string) SectionMap {
	sections := SectionMap{}
	if text == "" {
		return sections
	}

	current := DefaultSection
	var buf []string

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		found := ""
		if len([]rune(lower)) < sectionHeadingMaxLen {
			for _, rule := range sectionRules {
				if containsAny(lower, rule.Keywords) {
					found = rule.Name
					break
				}
			}
		}

		if found != "" {
			if len(buf) > 0 {
				sections[current] = strings.Join(buf, "\n")
			}
			current = found
			buf = []string{line}
		} else {
			buf = append(buf, line)
		}
	}

	if len(buf) > 0 {
		sections[current] = strings.Join(buf, "\n")
	}
	return sections
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
