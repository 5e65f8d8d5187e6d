// Package tagmap translates business-type keywords into OpenStreetMap
// category tags.
package tagmap

import (
	"strings"
	"unicode"
)

// DefaultTag is the catch-all used when nothing else matches.
const DefaultTag = "shop"

// exactTags maps known category keywords to their OSM tag.
var exactTags = map[string]string{
	"restaurant":  "amenity=restaurant",
	"cafe":        "amenity=cafe",
	"bar":         "amenity=bar",
	"pub":         "amenity=pub",
	"fast_food":   "amenity=fast_food",
	"bakery":      "shop=bakery",
	"supermarket": "shop=supermarket",
	"shop":        "shop",
	"retail":      "shop",
	"office":      "office",
	"coworking":   "office=coworking",
	"it":          "office=it",
	"hotel":       "tourism=hotel",
	"hostel":      "tourism=hostel",
	"gym":         "leisure=fitness_centre",
	"fitness":     "leisure=fitness_centre",
	"beauty":      "shop=beauty",
	"hairdresser": "shop=hairdresser",
	"automotive":  "shop=car_repair",
	"car_dealer":  "shop=car",
	"medical":     "amenity=clinic",
	"dentist":     "amenity=dentist",
	"pharmacy":    "amenity=pharmacy",
	"veterinary":  "amenity=veterinary",
	"lawyer":      "office=lawyer",
	"bank":        "amenity=bank",
	"service":     "craft",
}

// cluster is an ordered fallback rule: the first cluster with a keyword
// matching one of the input's word tokens wins.
type cluster struct {
	keywords []string
	tag      string
}

var clusters = []cluster{
	{[]string{"ai", "tech", "saas", "software", "startup", "digital"}, "office=company"},
	{[]string{"dental", "clinic", "doctor", "health", "medic"}, "amenity=clinic"},
	{[]string{"law", "attorney", "legal", "notary"}, "office=lawyer"},
	{[]string{"food", "dining", "eat", "pizza", "burger"}, "amenity=restaurant"},
	{[]string{"coffee", "espresso"}, "amenity=cafe"},
	{[]string{"yoga", "workout", "crossfit", "pilates"}, "leisure=fitness_centre"},
	{[]string{"salon", "spa", "nail", "barber"}, "shop=beauty"},
	{[]string{"car", "auto", "garage", "tire", "mechanic"}, "shop=car_repair"},
	{[]string{"sleep", "stay", "resort", "inn"}, "tourism=hotel"},
	{[]string{"finance", "insurance", "account"}, "office"},
	{[]string{"grocery", "market"}, "shop=supermarket"},
	{[]string{"repair", "plumb", "electric", "carpent"}, "craft"},
}

// shortKeywordLen is the length at or below which a cluster keyword must
// match a whole word token. Without the boundary, "ai" fires inside "nail"
// and "hair".
const shortKeywordLen = 4

// Resolve maps a category keyword or free-text phrase to a single OSM tag.
// Exact matches win, then the first keyword cluster matching one of the
// input's word tokens, then the catch-all. Pure and deterministic.
func Resolve(category string) string {
	needle := strings.ToLower(strings.TrimSpace(category))
	if needle == "" {
		return DefaultTag
	}

	if tag, ok := exactTags[needle]; ok {
		return tag
	}

	tokens := strings.FieldsFunc(needle, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, cl := range clusters {
		for _, kw := range cl.keywords {
			if matchKeyword(tokens, kw) {
				return cl.tag
			}
		}
	}

	return DefaultTag
}

// matchKeyword reports whether kw matches any word token. Short keywords
// require an exact token; longer ones may match as a token prefix so that
// "plumb" covers "plumbing" and "carpent" covers "carpentry".
func matchKeyword(tokens []string, kw string) bool {
	for _, tok := range tokens {
		if len(kw) <= shortKeywordLen {
			if tok == kw {
				return true
			}
		} else if strings.HasPrefix(tok, kw) {
			return true
		}
	}
	return false
}
