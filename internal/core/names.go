package core

// placeholderNames seed freshly added expenses that arrive without a name.
var placeholderNames = []string{
	"Groceries",
	"Train tickets",
	"Dinner",
	"Drinks",
	"Museum",
	"Fuel",
	"Parking",
	"Snacks",
}

// PlaceholderName picks an expense name using the provided random source;
// randInt(n) must return a value in [0, n).
func PlaceholderName(randInt func(int) int) string {
	return placeholderNames[randInt(len(placeholderNames))]
}
