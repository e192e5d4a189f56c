// Package huntcodes narrows a state draw-code catalog down to the codes
// that fit a desired species and weapon. The catalog's species strings
// are inconsistently formatted free text, so matching is alias-based and
// substring-tolerant, and every narrowing step falls back to the broader
// set when it would otherwise discard everything: showing too many codes
// beats showing none while a client is filing a draw application.
package huntcodes

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

// Weapon labels as presented to users.
const (
	WeaponRifle        = "Rifle"
	WeaponArchery      = "Archery"
	WeaponMuzzleloader = "Muzzleloader"
)

// SpeciesAliases maps each user-facing species label to the raw catalog
// strings considered equivalent. Catalog species are matched
// case-insensitively and by substring, so "MULE DEER - CENTRAL" still
// hits the "MULE DEER" alias.
var SpeciesAliases = map[string][]string{
	"Elk":            {"ELK"},
	"Mule Deer":      {"DEER", "MULE DEER"},
	"Whitetail Deer": {"DEER", "WHITETAIL"},
	"Pronghorn":      {"PRONGHORN", "ANTELOPE"},
	"Black Bear":     {"BEAR"},
	"Moose":          {"MOOSE"},
	"Bighorn Sheep":  {"BIGHORN", "SHEEP"},
	"Mountain Goat":  {"GOAT"},
	"Mountain Lion":  {"LION"},
	"Turkey":         {"TURKEY"},
}

// WeaponDigits maps each weapon label to the digit expected in the
// second hyphen-delimited segment of a hunt code.
var WeaponDigits = map[string]string{
	WeaponRifle:        "1",
	WeaponArchery:      "2",
	WeaponMuzzleloader: "3",
}

// Filter returns the options applicable to the given species and weapon,
// sorted ascending by code.
//
// An empty species fails closed with an empty result. An unrecognized
// species label cannot narrow anything, so the options come back
// unfiltered. Otherwise options are narrowed by species alias, then by
// weapon digit when the weapon is recognized; a narrowing step that
// matches nothing is discarded in favor of the set it started from. The
// input slice is never mutated.
func Filter(options []domain.HuntCodeOption, species, weapon string) []domain.HuntCodeOption {
	if species == "" {
		return []domain.HuntCodeOption{}
	}

	aliases, ok := SpeciesAliases[species]
	if !ok {
		unfiltered := make([]domain.HuntCodeOption, len(options))
		copy(unfiltered, options)
		return unfiltered
	}

	candidates := make([]domain.HuntCodeOption, 0, len(options))
	for _, opt := range options {
		if speciesMatches(opt.Species, aliases) {
			candidates = append(candidates, opt)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, options...)
	}

	if digit, ok := WeaponDigits[weapon]; ok {
		byWeapon := make([]domain.HuntCodeOption, 0, len(candidates))
		for _, opt := range candidates {
			if weaponDigit(opt.Code) == digit {
				byWeapon = append(byWeapon, opt)
			}
		}
		if len(byWeapon) > 0 {
			candidates = byWeapon
		}
	}

	coll := collate.New(language.AmericanEnglish)
	sort.SliceStable(candidates, func(i, j int) bool {
		return coll.CompareString(candidates[i].Code, candidates[j].Code) < 0
	})

	return candidates
}

// LabelForDigit is the inverse weapon lookup. Unrecognized, garbled, or
// missing digits default to Rifle; it never errors.
func LabelForDigit(digit string) string {
	switch digit {
	case WeaponDigits[WeaponArchery]:
		return WeaponArchery
	case WeaponDigits[WeaponMuzzleloader]:
		return WeaponMuzzleloader
	default:
		return WeaponRifle
	}
}

// speciesMatches reports whether a raw catalog species string matches any
// alias, after trimming and uppercasing, exactly or by containment.
func speciesMatches(raw string, aliases []string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, alias := range aliases {
		if normalized == alias || strings.Contains(normalized, alias) {
			return true
		}
	}
	return false
}

// weaponDigit extracts the second hyphen-delimited segment of a code, or
// "" when the code has fewer than two segments.
func weaponDigit(code string) string {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
