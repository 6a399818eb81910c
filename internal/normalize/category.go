package normalize

import "strings"

// Canonical category taxonomy. Raw labels from the ticketing platforms map
// many-to-one onto these; anything unmapped passes through as CategoryOther.
const (
	CategoryConcert     = "Concert"
	CategoryTheater     = "Theater"
	CategoryStandUp     = "Stand-Up"
	CategoryOperaBallet = "Opera & Ballet"
	CategoryCinema      = "Cinema"
	CategoryExhibition  = "Exhibition"
	CategoryWorkshop    = "Workshop"
	CategoryFestival    = "Festival"
	CategorySports      = "Sports"
	CategoryKids        = "Kids & Family"
	CategoryOther       = "Other"
)

var categoryLookup = map[string]string{
	"konser": CategoryConcert, "müzik": CategoryConcert, "muzik": CategoryConcert,
	"music": CategoryConcert, "concert": CategoryConcert, "senfoni": CategoryConcert,

	"tiyatro": CategoryTheater, "theater": CategoryTheater, "theatre": CategoryTheater,
	"sahne": CategoryTheater,

	"stand-up": CategoryStandUp, "stand up": CategoryStandUp, "standup": CategoryStandUp,
	"komedi": CategoryStandUp, "comedy": CategoryStandUp,

	"opera": CategoryOperaBallet, "bale": CategoryOperaBallet, "ballet": CategoryOperaBallet,

	"sinema": CategoryCinema, "cinema": CategoryCinema, "film": CategoryCinema,
	"movie": CategoryCinema,

	"sergi": CategoryExhibition, "exhibition": CategoryExhibition, "müze": CategoryExhibition,
	"muze": CategoryExhibition, "museum": CategoryExhibition,

	"atölye": CategoryWorkshop, "atolye": CategoryWorkshop, "workshop": CategoryWorkshop,
	"seminer": CategoryWorkshop, "seminar": CategoryWorkshop, "konferans": CategoryWorkshop,
	"conference": CategoryWorkshop,

	"festival": CategoryFestival,

	"spor": CategorySports, "sports": CategorySports, "maç": CategorySports,
	"mac": CategorySports,

	"çocuk": CategoryKids, "cocuk": CategoryKids, "kids": CategoryKids,
	"aile": CategoryKids, "family": CategoryKids,

	// generic platform label, carries no signal
	"etkinlik": CategoryOther, "event": CategoryOther,
}

// MapCategory maps a raw category label through the fixed taxonomy lookup.
func MapCategory(raw string) string {
	key := strings.ToLower(CleanText(raw))
	if key == "" {
		return CategoryOther
	}
	if canonical, ok := categoryLookup[key]; ok {
		return canonical
	}
	return CategoryOther
}
