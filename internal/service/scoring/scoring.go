// Package scoring computes lead quality scores and status tiers from a
// configurable weight profile.
package scoring

import "github.com/leadscout/leadgen-api/internal/entity"

// ActiveStatus is the registry status value that earns the verification bonus.
const ActiveStatus = "Active"

// Signals captures the per-lead inputs the score is derived from.
type Signals struct {
	Phone    string
	Website  string
	Email    string
	Address  string
	Category string
	Registry entity.RegistryInfo
}

// Profile holds every weight and threshold used by the scorer. All values are
// named here so the formula stays auditable; nothing is hardcoded inline.
type Profile struct {
	Name string

	Base             int
	PhoneBonus       int
	WebsiteBonus     int
	EmailBonus       int
	AddressBonus     int
	AddressMinLength int
	ActiveBonus      int
	RegistryHitBonus int
	HighValueBonus   int
	HighValueTags    map[string]bool
	NoContactPenalty int

	// Descending tier cutoffs: score >= Hot is "hot", >= Warm is "warm",
	// >= Cold is "cold", anything below is "unqualified".
	HotThreshold  int
	WarmThreshold int
	ColdThreshold int
}

// DefaultProfile mirrors the general-purpose weighting.
func DefaultProfile() Profile {
	return Profile{
		Name:             "default",
		Base:             50,
		PhoneBonus:       15,
		WebsiteBonus:     20,
		EmailBonus:       15,
		AddressBonus:     10,
		AddressMinLength: 20,
		ActiveBonus:      20,
		RegistryHitBonus: 5,
		HighValueBonus:   10,
		HighValueTags: map[string]bool{
			"office":         true,
			"office=company": true,
			"office=lawyer":  true,
		},
		NoContactPenalty: 20,
		HotThreshold:     80,
		WarmThreshold:    60,
		ColdThreshold:    40,
	}
}

// B2BProfile weights registry verification and commercial categories more
// heavily and raises every tier cutoff.
func B2BProfile() Profile {
	return Profile{
		Name:             "b2b",
		Base:             40,
		PhoneBonus:       15,
		WebsiteBonus:     20,
		EmailBonus:       15,
		AddressBonus:     10,
		AddressMinLength: 20,
		ActiveBonus:      25,
		RegistryHitBonus: 10,
		HighValueBonus:   15,
		HighValueTags: map[string]bool{
			"office":          true,
			"office=company":  true,
			"office=lawyer":   true,
			"office=it":       true,
			"amenity=clinic":  true,
			"shop=car_repair": true,
		},
		NoContactPenalty: 25,
		HotThreshold:     85,
		WarmThreshold:    70,
		ColdThreshold:    50,
	}
}

// ByName resolves a profile from its configuration name.
func ByName(name string) Profile {
	if name == "b2b" {
		return B2BProfile()
	}
	return DefaultProfile()
}

// Score evaluates the signals against the profile. The result is always
// clamped to [0, 100].
func (p Profile) Score(in Signals) int {
	score := p.Base

	if in.Phone != "" {
		score += p.PhoneBonus
	}
	if in.Website != "" {
		score += p.WebsiteBonus
	}
	if in.Email != "" {
		score += p.EmailBonus
	}

	if len(in.Address) > p.AddressMinLength {
		score += p.AddressBonus
	}

	switch {
	case in.Registry.Status == ActiveStatus:
		score += p.ActiveBonus
	case in.Registry.Name != "":
		score += p.RegistryHitBonus
	}

	if p.HighValueTags[in.Category] {
		score += p.HighValueBonus
	}

	if in.Phone == "" && in.Website == "" && in.Email == "" {
		score -= p.NoContactPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Classify maps a score onto the profile's four ordered tiers.
func (p Profile) Classify(score int) entity.LeadStatus {
	switch {
	case score >= p.HotThreshold:
		return entity.LeadStatusHot
	case score >= p.WarmThreshold:
		return entity.LeadStatusWarm
	case score >= p.ColdThreshold:
		return entity.LeadStatusCold
	default:
		return entity.LeadStatusUnqualified
	}
}
