// Package data holds the immutable alias and keyword tables shared by the
// classifier and the location resolver. Tables are built once at package
// initialization and never mutated.
package data

import "github.com/jonesrussell/freefood/internal/textmatch"

// Canonical building names referenced by room tables.
const (
	StudentCentre = "Student Centre"
	UCDVillage    = "UCD Village"
)

var studentCentreRooms = []textmatch.Entry{
	{Phrase: "astra hall", Value: "Astra Hall"},
	{Phrase: "fitzgerald chamber", Value: "FitzGerald Chamber"},
	{Phrase: "fitzgerald debating chamber", Value: "FitzGerald Chamber"},
	{Phrase: "red room", Value: "Red Room"},
	{Phrase: "blue room", Value: "Blue Room"},
	{Phrase: "harmony studio", Value: "Harmony Studio"},
	{Phrase: "dance studio", Value: "Dance Studio"},
	{Phrase: "student centre cinema", Value: "Cinema"},
	{Phrase: "ucd cinema", Value: "Cinema"},
	{Phrase: "clubhouse bar", Value: "Clubhouse Bar"},
	{Phrase: "the clubhouse", Value: "Clubhouse Bar"},
	{Phrase: "student centre atrium", Value: "Atrium"},
	{Phrase: "meeting room 6", Value: "Meeting Room 6"},
	{Phrase: "meeting room 7", Value: "Meeting Room 7"},
}

var villageRooms = []textmatch.Entry{
	{Phrase: "village auditorium", Value: "Auditorium"},
	{Phrase: "village kitchen", Value: "Kitchen"},
	{Phrase: "village hub", Value: "Hub"},
	{Phrase: "village meeting room", Value: "Meeting Room"},
}

var buildings = []textmatch.Entry{
	{Phrase: "student centre", Value: StudentCentre},
	{Phrase: "student center", Value: StudentCentre},
	{Phrase: "newman building", Value: "Newman Building"},
	{Phrase: "newman", Value: "Newman Building"},
	{Phrase: "arts block", Value: "Newman Building"},
	{Phrase: "james joyce library", Value: "James Joyce Library"},
	{Phrase: "james joyce", Value: "James Joyce Library"},
	{Phrase: "jj", Value: "James Joyce Library"},
	{Phrase: "library", Value: "James Joyce Library"},
	{Phrase: "science centre", Value: "Science Centre"},
	{Phrase: "o'brien centre", Value: "Science Centre"},
	{Phrase: "obrien centre", Value: "Science Centre"},
	{Phrase: "science hub", Value: "Science Centre"},
	{Phrase: "engineering building", Value: "Engineering & Materials Science Centre"},
	{Phrase: "engineering and materials science centre", Value: "Engineering & Materials Science Centre"},
	{Phrase: "eng", Value: "Engineering & Materials Science Centre"},
	{Phrase: "quinn school", Value: "Quinn School of Business"},
	{Phrase: "quinn", Value: "Quinn School of Business"},
	{Phrase: "sutherland school of law", Value: "Sutherland School of Law"},
	{Phrase: "sutherland", Value: "Sutherland School of Law"},
	{Phrase: "law school", Value: "Sutherland School of Law"},
	{Phrase: "health sciences centre", Value: "Health Sciences Centre"},
	{Phrase: "health sciences", Value: "Health Sciences Centre"},
	{Phrase: "veterinary sciences centre", Value: "Veterinary Sciences Centre"},
	{Phrase: "vet building", Value: "Veterinary Sciences Centre"},
	{Phrase: "vet", Value: "Veterinary Sciences Centre"},
	{Phrase: "agriculture and food science centre", Value: "Agriculture & Food Science Centre"},
	{Phrase: "ag science", Value: "Agriculture & Food Science Centre"},
	{Phrase: "computer science building", Value: "Computer Science Building"},
	{Phrase: "csi building", Value: "Computer Science Building"},
	{Phrase: "tierney building", Value: "Tierney Building"},
	{Phrase: "o'reilly hall", Value: "O'Reilly Hall"},
	{Phrase: "oreilly hall", Value: "O'Reilly Hall"},
	{Phrase: "ucd sport", Value: "UCD Sport and Fitness"},
	{Phrase: "sports centre", Value: "UCD Sport and Fitness"},
	{Phrase: "richview", Value: "Richview"},
	{Phrase: "hanna sheehy-skeffington", Value: "Hanna Sheehy-Skeffington Building"},
	{Phrase: "daedalus", Value: "Daedalus Building"},
	{Phrase: "global lounge", Value: "Global Lounge"},
	{Phrase: "ucd village", Value: UCDVillage},
	{Phrase: "the village", Value: UCDVillage},
	{Phrase: "conway institute", Value: "Conway Institute"},
	{Phrase: "charles institute", Value: "Charles Institute"},
	{Phrase: "belfield house", Value: "Belfield House"},
	{Phrase: "roebuck castle", Value: "Roebuck Castle"},
}

var otherColleges = []string{
	"tcd", "trinity college", "trinity", "dcu", "dublin city university",
	"tu dublin", "tud", "maynooth", "nuig", "university of galway", "ucc",
	"university of limerick", "rcsi", "ncad", "dit", "iadt", "griffith college",
	"dbs", "dublin business school", "nci", "qub", "queen's university", "atu",
}

var offCampusVenues = []string{
	"kielys", "kiely's", "o'neills", "oneills", "doyles", "the palace",
	"copper face jacks", "coppers", "diceys", "everleigh", "whelans",
	"vicar street", "3arena", "temple bar", "grafton street",
	"dundrum town centre", "city centre", "bar", "pub", "grill",
	"restaurant", "hotel", "nightclub", "brewery", "tavern", "inn",
}

var foodCompounds = []string{
	"chocolate bar", "salad bar", "snack bar", "granola bar", "protein bar",
	"cereal bar", "candy bar", "breakfast bar", "dessert bar", "taco bar",
	"nacho bar", "hot chocolate bar", "ice cream bar", "mixed grill",
	"grilled cheese",
}

var nightlife = []string{
	"pub crawl", "bar crawl", "club night", "night out", "nightclub",
	"ball tickets", "annual ball", "charity ball", "masquerade ball",
	"black tie", "gala ball", "gala dinner", "gala night", "pre drinks",
	"pre-drinks", "predrinks", "afters", "rave", "dj set", "open bar",
	"cocktail night",
}

var (
	studentCentreRoomSet = textmatch.New(studentCentreRooms)
	villageRoomSet       = textmatch.New(villageRooms)
	buildingSet          = textmatch.New(buildings)
	otherCollegeSet      = textmatch.NewList(otherColleges...)
	offCampusSet         = textmatch.NewList(offCampusVenues...)
	foodCompoundSet      = textmatch.NewList(foodCompounds...)
	nightlifeSet         = textmatch.NewList(nightlife...)
)

// StudentCentreRooms maps room aliases to room names inside the Student Centre.
func StudentCentreRooms() *textmatch.PhraseSet { return studentCentreRoomSet }

// VillageRooms maps room aliases to room names inside UCD Village.
func VillageRooms() *textmatch.PhraseSet { return villageRoomSet }

// Buildings maps campus building aliases to canonical building names.
func Buildings() *textmatch.PhraseSet { return buildingSet }

// OtherColleges lists institutions whose mention rejects a post.
func OtherColleges() *textmatch.PhraseSet { return otherCollegeSet }

// OffCampusVenues lists venues whose mention rejects a post.
func OffCampusVenues() *textmatch.PhraseSet { return offCampusSet }

// FoodCompounds lists food phrases containing a venue word, such as "salad bar".
func FoodCompounds() *textmatch.PhraseSet { return foodCompoundSet }

// Nightlife lists compound nightlife phrases.
func Nightlife() *textmatch.PhraseSet { return nightlifeSet }
