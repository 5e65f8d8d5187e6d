package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/leadscout/leadgen-api/internal/overpass"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// Ordered alias lists: first tag present wins.
var (
	nameAliases    = []string{"name", "brand", "operator"}
	phoneAliases   = []string{"phone", "contact:phone"}
	websiteAliases = []string{"website", "contact:website", "url"}
	emailAliases   = []string{"email", "contact:email"}
	addressKeys    = []string{"addr:housenumber", "addr:street", "addr:city", "addr:state", "addr:postcode"}
)

// Residential entries are not leads; any name containing one of these
// substrings is rejected.
var residentialDenylist = []string{"house", "home", "apartment", "residence", "residential"}

// nameSentinels are placeholder names that mean "no usable name".
var nameSentinels = map[string]bool{
	"unknown":          true,
	"unknown business": true,
}

// Candidate is a normalized business candidate awaiting enrichment and
// scoring. Lat and Lon are always set.
type Candidate struct {
	Name     string
	Category string
	Address  string
	Phone    string
	Website  string
	Email    string
	Lat      float64
	Lon      float64
}

// NormalizeElement converts one raw map element into a candidate. It returns
// false when the element has no usable name, no resolvable coordinate, or
// looks like a residential entry.
func NormalizeElement(el overpass.Element, category string) (Candidate, bool) {
	name := extractAlias(el.Tags, nameAliases)
	if !usableName(name) {
		return Candidate{}, false
	}

	lat, lon, ok := resolveCoordinate(el)
	if !ok {
		return Candidate{}, false
	}

	return Candidate{
		Name:     name,
		Category: category,
		Address:  buildAddress(el.Tags, lat, lon),
		Phone:    SanitizePhone(extractAlias(el.Tags, phoneAliases)),
		Website:  normalizeWebsite(extractAlias(el.Tags, websiteAliases)),
		Email:    normalizeEmail(extractAlias(el.Tags, emailAliases)),
		Lat:      lat,
		Lon:      lon,
	}, true
}

func usableName(name string) bool {
	if len(name) < 2 {
		return false
	}
	lowered := strings.ToLower(name)
	if nameSentinels[lowered] {
		return false
	}
	for _, denied := range residentialDenylist {
		if strings.Contains(lowered, denied) {
			return false
		}
	}
	return true
}

// resolveCoordinate uses the element's own position for point geometry and
// the computed centroid for area geometry.
func resolveCoordinate(el overpass.Element) (float64, float64, bool) {
	if el.Type == "node" {
		if el.Lat == 0 && el.Lon == 0 {
			return 0, 0, false
		}
		return el.Lat, el.Lon, true
	}
	if el.Center == nil || (el.Center.Lat == 0 && el.Center.Lon == 0) {
		return 0, 0, false
	}
	return el.Center.Lat, el.Center.Lon, true
}

// buildAddress joins whichever structured address tags are present, falling
// back to a coordinate string rounded to four decimals.
func buildAddress(tags map[string]string, lat, lon float64) string {
	var parts []string
	for _, key := range addressKeys {
		if value := strings.TrimSpace(tags[key]); value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Near %.4f, %.4f", lat, lon)
	}
	return strings.Join(parts, ", ")
}

func extractAlias(tags map[string]string, aliases []string) string {
	for _, key := range aliases {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}
	return ""
}

// SanitizePhone keeps only digits, '+', '-', parentheses and spaces. When the
// result is a parseable international number it is canonicalized to E.164.
func SanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		if number, err := phonenumbers.Parse(cleaned, "ZZ"); err == nil && phonenumbers.IsValidNumber(number) {
			return phonenumbers.Format(number, phonenumbers.E164)
		}
	}
	return cleaned
}

// normalizeWebsite defaults missing schemes to https and drops values whose
// host is not a valid domain.
func normalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if _, err := idnaProfile.ToASCII(u.Hostname()); err != nil {
		return ""
	}
	return u.String()
}

func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	return email
}
