package usecase

import (
	"strings"
	"testing"
)

func TestIdentifySectionsAssignsFollowingLines(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"Experience",
		"Acme Corp, 2019-2024",
		"Built things",
		"Education",
		"State University",
	}, "\n")

	sections := IdentifySections(text)

	header, ok := sections["HEADER"]
	if !ok {
		t.Fatalf("expected HEADER section, got %v", sections.Names())
	}
	if !strings.Contains(header, "Jane Doe") || !strings.Contains(header, "jane@example.com") {
		t.Errorf("HEADER missing leading lines: %q", header)
	}

	exp, ok := sections["EXPERIENCE"]
	if !ok {
		t.Fatalf("expected EXPERIENCE section, got %v", sections.Names())
	}
	for _, want := range []string{"Experience", "Acme Corp, 2019-2024", "Built things"} {
		if !strings.Contains(exp, want) {
			t.Errorf("EXPERIENCE missing %q: %q", want, exp)
		}
	}
	if strings.Contains(exp, "State University") {
		t.Errorf("EXPERIENCE should end at the Education heading: %q", exp)
	}

	edu, ok := sections["EDUCATION"]
	if !ok {
		t.Fatalf("expected EDUCATION section, got %v", sections.Names())
	}
	if !strings.Contains(edu, "State University") {
		t.Errorf("EDUCATION missing content: %q", edu)
	}
}

func TestIdentifySectionsLastWriteWins(t *testing.T) {
	text := strings.Join([]string{
		"Experience",
		"first block",
		"Education",
		"some school",
		"Experience",
		"second block",
	}, "\n")

	sections := IdentifySections(text)

	exp := sections["EXPERIENCE"]
	if strings.Contains(exp, "first block") {
		t.Errorf("earlier Experience block should have been replaced: %q", exp)
	}
	if !strings.Contains(exp, "second block") {
		t.Errorf("later Experience block should win: %q", exp)
	}
}

func TestIdentifySectionsLongLineIsNotHeading(t *testing.T) {
	long := "My extensive professional experience spans many industries and roles over decades"
	text := "intro\n" + long + "\nmore intro"

	sections := IdentifySections(text)

	if _, ok := sections["EXPERIENCE"]; ok {
		t.Errorf("line of %d chars must not count as a heading", len(long))
	}
	if !strings.Contains(sections["HEADER"], long) {
		t.Errorf("long line should stay in HEADER: %v", sections)
	}
}

func TestIdentifySectionsHeadingLimitCountsRunes(t *testing.T) {
	// 45 runes but 80 bytes; still under the 50-char heading limit.
	heading := strings.Repeat("é", 35) + " education"
	sections := IdentifySections("intro\n" + heading + "\ndetails")
	if _, ok := sections["EDUCATION"]; !ok {
		t.Errorf("%d-rune heading should classify, got %v", len([]rune(heading)), sections.Names())
	}
}

func TestIdentifySectionsFirstRuleWinsWithinLine(t *testing.T) {
	// "profile" (SUMMARY) appears before the SKILLS keywords in rule order.
	sections := IdentifySections("Profile and skills")
	if _, ok := sections["SUMMARY"]; !ok {
		t.Errorf("expected SUMMARY to win, got %v", sections.Names())
	}
}

func TestIdentifySectionsEmptyInput(t *testing.T) {
	if got := IdentifySections(""); len(got) != 0 {
		t.Errorf("empty input should yield empty map, got %v", got)
	}
}
