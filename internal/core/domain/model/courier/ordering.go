package courier

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// rosterLanguage drives name collation: accents sort next to their base letter and case is
// significant only as a tie breaker, matching how names are read on the roster.
var rosterLanguage = language.BrazilianPortuguese

// SortByName orders couriers by name using locale-aware collation. The sort is stable, so
// couriers with identical names keep their relative order.
func SortByName(couriers []*Courier) {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(rosterLanguage)
	slices.SortStableFunc(couriers, func(a, b *Courier) int {
		return col.CompareString(a.name, b.name)
	})
}
