package service

import "strings"

// The keyword vocabularies are owned here so that callers never re-declare
// them. Matching is case-insensitive substring containment with no
// tokenization or stemming; false positives and negatives are accepted.

// topicKeywords mark a message as being about food at all.
var topicKeywords = []string{
	"restaurant", "eat", "food", "dinner", "lunch", "meal", "cuisine", "dining",
}

// intentKeywords mark a message as asking for a recommendation or lookup.
var intentKeywords = []string{
	"near me", "find", "where", "suggest", "recommend", "looking for",
	"want to eat", "nearby", "around here",
}

// cuisineKeywords are candidate food types forwarded to the places lookup
// as a free-text filter.
var cuisineKeywords = []string{
	"italian", "chinese", "japanese", "mexican", "indian", "american", "french",
	"mediterranean", "middle eastern", "vietnamese", "pho", "thai", "greek", "spanish",
	"german", "russian", "african", "caribbean", "south american", "korean", "bbq",
	"pizza", "burger", "sandwiches", "sushi", "ramen", "tapas", "steak", "seafood",
	"vegetarian", "vegan", "gluten-free", "bakery", "cafe", "coffee", "dessert", "brunch",
}

// IsRestaurantQuery reports whether the message looks like a
// restaurant/location question. It requires at least one topic keyword and
// at least one intent keyword; "I like restaurants" alone does not qualify.
func IsRestaurantQuery(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, topicKeywords) && containsAny(lower, intentKeywords)
}

// ExtractFoodKeywords returns the cuisine keywords present in the message,
// in vocabulary order.
func ExtractFoodKeywords(message string) []string {
	lower := strings.ToLower(message)
	var found []string
	for _, food := range cuisineKeywords {
		if strings.Contains(lower, food) {
			found = append(found, food)
		}
	}
	return found
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
