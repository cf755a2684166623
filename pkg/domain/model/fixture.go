package model

import "strings"

// Fixture identifies a packaged demo asset bundle applied on top of a
// freshly extracted shop. The set is closed; unknown names mean "none".
type Fixture string

const (
	FixtureNone     Fixture = ""
	FixtureStarwars Fixture = "starwars"
	FixtureGot      Fixture = "got"
	FixtureTech     Fixture = "tech"
)

// ParseFixture normalizes a user-supplied fixture name: trimmed and
// case-insensitive. An unrecognized name maps to FixtureNone, not an error.
func ParseFixture(s string) Fixture {
	switch Fixture(strings.ToLower(strings.TrimSpace(s))) {
	case FixtureStarwars:
		return FixtureStarwars
	case FixtureGot:
		return FixtureGot
	case FixtureTech:
		return FixtureTech
	default:
		return FixtureNone
	}
}
