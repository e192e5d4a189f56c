package huntcodes

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitterhq/outfitterhq-sub004/internal/domain"
)

func opt(code, species string) domain.HuntCodeOption {
	return domain.HuntCodeOption{Code: code, Species: species}
}

func codes(options []domain.HuntCodeOption) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Code
	}
	return out
}

func elkAndDeer() []domain.HuntCodeOption {
	return []domain.HuntCodeOption{
		opt("ELK-1-294", "ELK"),
		opt("ELK-2-294", "ELK"),
		opt("DEER-1-100", "MULE DEER"),
	}
}

func TestFilterEmptyCatalog(t *testing.T) {
	result := Filter(nil, "Elk", WeaponRifle)
	assert.Empty(t, result)
}

func TestFilterEmptySpeciesFailsClosed(t *testing.T) {
	result := Filter(elkAndDeer(), "", WeaponRifle)
	assert.Empty(t, result, "no species means no meaningful filter; return nothing rather than everything")
}

func TestFilterUnknownSpeciesReturnsEverything(t *testing.T) {
	options := elkAndDeer()
	result := Filter(options, "Jackalope", WeaponRifle)
	assert.Equal(t, codes(options), codes(result))
}

func TestFilterSpeciesAndWeapon(t *testing.T) {
	result := Filter(elkAndDeer(), "Elk", WeaponArchery)
	assert.Equal(t, []string{"ELK-2-294"}, codes(result))
}

func TestFilterWeaponFallback(t *testing.T) {
	// No elk code carries digit "3": the weapon narrowing is discarded
	// and both elk rows come back, sorted.
	result := Filter(elkAndDeer(), "Elk", WeaponMuzzleloader)
	assert.Equal(t, []string{"ELK-1-294", "ELK-2-294"}, codes(result))
}

func TestFilterSpeciesFallback(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("EE-1-001", "ELK"),
		opt("EE-2-002", "ELK"),
	}

	result := Filter(options, "Moose", "")
	assert.Equal(t, []string{"EE-1-001", "EE-2-002"}, codes(result),
		"known species with zero catalog matches falls back to the full catalog")
}

func TestFilterSubstringAlias(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("DE-1-044", "MULE DEER - NORTH"),
		opt("EE-1-001", "ELK"),
	}

	for _, weapon := range []string{WeaponRifle, "", "Crossbow"} {
		result := Filter(options, "Mule Deer", weapon)
		assert.Equal(t, []string{"DE-1-044"}, codes(result))
	}
}

func TestFilterNormalizesCatalogSpecies(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("EE-1-001", "  elk  "),
	}

	result := Filter(options, "Elk", "")
	assert.Equal(t, []string{"EE-1-001"}, codes(result))
}

func TestFilterIgnoresUnrecognizedWeapon(t *testing.T) {
	result := Filter(elkAndDeer(), "Elk", "Slingshot")
	assert.Equal(t, []string{"ELK-1-294", "ELK-2-294"}, codes(result))
}

func TestFilterSkipsMalformedCodesInWeaponPass(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("EE-2-001", "ELK"),
		opt("NOHYPHEN", "ELK"),
	}

	result := Filter(options, "Elk", WeaponArchery)
	assert.Equal(t, []string{"EE-2-001"}, codes(result))
}

func TestFilterSortsByCode(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("EE-1-300", "ELK"),
		opt("EE-1-005", "ELK"),
		opt("EE-1-120", "ELK"),
	}

	result := Filter(options, "Elk", WeaponRifle)
	got := codes(result)
	assert.True(t, sort.StringsAreSorted(got), "codes must be non-decreasing: %v", got)
	assert.Equal(t, []string{"EE-1-005", "EE-1-120", "EE-1-300"}, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	options := []domain.HuntCodeOption{
		opt("EE-1-300", "ELK"),
		opt("EE-1-005", "ELK"),
	}

	_ = Filter(options, "Elk", WeaponRifle)
	require.Equal(t, []string{"EE-1-300", "EE-1-005"}, codes(options))
}

func TestLabelForDigit(t *testing.T) {
	assert.Equal(t, WeaponArchery, LabelForDigit("2"))
	assert.Equal(t, WeaponMuzzleloader, LabelForDigit("3"))
	assert.Equal(t, WeaponRifle, LabelForDigit("1"))
	assert.Equal(t, WeaponRifle, LabelForDigit("9"))
	assert.Equal(t, WeaponRifle, LabelForDigit(""))
}

func TestSpeciesAliasesNonEmpty(t *testing.T) {
	for label, aliases := range SpeciesAliases {
		assert.NotEmptyf(t, aliases, "species %q has no aliases", label)
	}
}
