package core

// Planets is the closed set of planet names a dish can belong to.
// The filter extractor is only allowed to emit planets from this list.
var Planets = []string{
	"Pandora",
	"Ego",
	"Cybertron",
	"Montressor",
	"Krypton",
	"Namecc",
	"Klyntar",
	"Asgard",
	"Tatooine",
	"Arrakis",
}

// IsKnownPlanet reports whether name is in the closed planet set.
func IsKnownPlanet(name string) bool {
	for _, p := range Planets {
		if p == name {
			return true
		}
	}
	return false
}
