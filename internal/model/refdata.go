package model

// Coffee and blood styles are indexed flavor tables; out-of-range or missing
// indices render as the placeholder rather than failing.

var coffeeStyles = []string{
	"Black",
	"Light & Sweet",
	"Macchiato",
	"Cream & Sugar",
	"Cold Brew",
	"Flat White",
	"Americano",
	"Espresso",
	"Heavy Foam",
	"Latte",
	"Decaf",
	"Milk Substitute",
	"Plenty of Sugar",
	"Anything",
}

var bloodTypes = []string{
	"A",
	"AAA",
	"AA",
	"Acidic",
	"Basic",
	"O",
	"O No",
	"H₂O",
	"Electric",
	"Love",
	"Fire",
	"Psychic",
	"Grass",
}

// CoffeeStyle returns the display text for a coffee index, or "Coffee?" when
// the player predates the field or the index is unmapped.
func CoffeeStyle(idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(coffeeStyles) {
		return "Coffee?"
	}
	return coffeeStyles[*idx]
}

// BloodType returns the display text for a blood index, or "Blood?" when the
// player predates the field or the index is unmapped.
func BloodType(idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(bloodTypes) {
		return "Blood?"
	}
	return bloodTypes[*idx]
}
