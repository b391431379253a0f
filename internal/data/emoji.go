package data

var emojiKeywords = map[rune]string{
	'🍕': "pizza",
	'🍩': "donuts",
	'🍪': "cookies",
	'☕': "coffee",
	'🍰': "cake",
	'🎂': "cake",
	'🧁': "cupcakes",
	'🥪': "sandwiches",
	'🍔': "burgers",
	'🌭': "hot dogs",
	'🍟': "chips",
	'🌮': "tacos",
	'🌯': "burritos",
	'🍣': "sushi",
	'🍱': "bento",
	'🍜': "noodles",
	'🍝': "pasta",
	'🍛': "curry",
	'🍲': "stew",
	'🥗': "salad",
	'🍿': "popcorn",
	'🥐': "croissants",
	'🥞': "pancakes",
	'🧇': "waffles",
	'🥯': "bagels",
	'🍞': "bread",
	'🥨': "pretzels",
	'🧀': "cheese",
	'🍫': "chocolate",
	'🍬': "sweets",
	'🍭': "sweets",
	'🍦': "ice cream",
	'🍨': "ice cream",
	'🍧': "ice cream",
	'🥧': "pie",
	'🍮': "dessert",
	'🍡': "dessert",
	'🍵': "tea",
	'🫖': "tea",
	'🧋': "bubble tea",
	'🥤': "drinks",
	'🧃': "juice",
	'🥛': "milk",
	'🍺': "beer",
	'🍻': "beer",
	'🍷': "wine",
	'🥂': "drinks",
	'🍸': "cocktails",
	'🍹': "cocktails",
	'🍎': "fruit",
	'🍏': "fruit",
	'🍌': "fruit",
	'🍓': "fruit",
	'🍇': "fruit",
	'🍉': "fruit",
	'🍊': "fruit",
	'🥑': "avocado",
	'🍗': "chicken",
	'🍖': "meat",
	'🥓': "bacon",
	'🍳': "breakfast",
	'🥙': "wraps",
	'🍽': "food",
	'🥡': "takeaway",
	'🥟': "dumplings",
}

// EmojiKeyword returns the food keyword an emoji stands for.
func EmojiKeyword(r rune) (string, bool) {
	kw, ok := emojiKeywords[r]
	return kw, ok
}
