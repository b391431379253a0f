package data

import "github.com/jonesrussell/freefood/internal/textmatch"

var strongFood = []string{
	"pizza", "free food", "free lunch", "free breakfast", "free dinner",
	"free snacks", "free coffee", "free tea", "free cake", "free sandwiches",
	"free pizza", "refreshments", "light refreshments", "finger food",
	"buffet", "bbq", "barbecue", "donuts", "doughnuts", "cookies",
	"cupcakes", "pancakes", "waffles", "sandwiches", "sushi", "nachos",
	"popcorn", "crepes", "brownies", "muffins", "croissants", "pastries",
	"tacos", "wraps", "burritos",
}

var weakFood = []string{
	"food", "lunch", "breakfast", "dinner", "brunch", "snacks", "snack",
	"drinks", "coffee", "tea", "cake", "treats", "bites", "nibbles",
	"something to eat", "grub", "dessert", "soup", "fruit",
	"hot chocolate", "juice", "soft drinks", "meal", "chocolate",
	"burgers", "beer", "wine",
}

var contextModifiers = []string{
	"free", "provided", "complimentary", "included", "on us",
	"on the house", "we'll bring", "we will bring", "we'll have",
	"we will have", "will be served", "courtesy of", "sponsored by",
	"no charge",
}

var negations = []string{
	"no food", "food not provided", "food will not be provided",
	"no refreshments", "byof", "bring your own", "bring your lunch",
	"packed lunch", "available for purchase", "available to buy",
	"not included", "at your own cost", "pay for your own", "buy your own",
}

// provisionPhrases make a small fee acceptable and override the
// food-activity filter.
var provisionPhrases = []string{
	"provided", "free food", "complimentary", "included", "will be provided",
	"on us", "on the house",
}

var (
	strongFoodSet = textmatch.NewList(strongFood...)
	weakFoodSet   = textmatch.NewList(weakFood...)
	modifierSet   = textmatch.NewList(contextModifiers...)
	negationSet   = textmatch.NewList(negations...)
	provisionSet  = textmatch.NewList(provisionPhrases...)
)

// StrongFood is sufficient evidence of free food on its own.
func StrongFood() *textmatch.PhraseSet { return strongFoodSet }

// WeakFood counts only alongside a context modifier.
func WeakFood() *textmatch.PhraseSet { return weakFoodSet }

// ContextModifiers upgrade weak food keywords.
func ContextModifiers() *textmatch.PhraseSet { return modifierSet }

// Negations veto any food signal.
func Negations() *textmatch.PhraseSet { return negationSet }

// ProvisionPhrases signal the organiser supplies the food.
func ProvisionPhrases() *textmatch.PhraseSet { return provisionSet }
