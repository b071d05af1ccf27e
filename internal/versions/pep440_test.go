package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) *Version {
	t.Helper()
	v, err := ParseVersion(s)
	require.NoError(t, err, s)
	return v
}

func TestParseVersion_EquivalentSpellings(t *testing.T) {
	tests := []struct {
		in   string
		same string
	}{
		{"v2.10.0", "2.10.0"},
		{"1.0-alpha.1", "1.0a1"},
		{"1.0BETA2", "1.0b2"},
		{"1.0c1", "1.0rc1"},
		{"1.0-preview", "1.0rc0"},
		{"1.0-3", "1.0.post3"},
		{"1.0.rev", "1.0.post0"},
		{"1.0_dev4", "1.0.dev4"},
		{"01.002", "1.2"},
		{"  3.1.4  ", "3.1.4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, 0, parse(t, tt.in).Compare(parse(t, tt.same)))
		})
	}
}

func TestParseVersion_Rejects(t *testing.T) {
	for _, in := range []string{"", "latest", "main", "1.0.x", "2.0-old", "1..0", "v", "1!2!3"} {
		_, err := ParseVersion(in)
		assert.Error(t, err, in)
	}
}

func TestCompare_PEP440Order(t *testing.T) {
	ascending := []string{
		"1.0.dev0",
		"1.0a1",
		"1.0a2.dev1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+abc",
		"1.0+local.1",
		"1.0+local.2",
		"1.0.post1.dev0",
		"1.0.post1",
		"1.1",
		"2.9.0",
		"2.10.0",
		"18446744073709551616",
		"99999999999999999999",
		"99999999999999999999.1",
		"1!0.1",
		"100000000000000000000!0.1",
	}

	parsed := make([]*Version, len(ascending))
	for i, s := range ascending {
		parsed[i] = parse(t, s)
	}

	for i := range parsed {
		for j := range parsed {
			got := parsed[i].Compare(parsed[j])
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s < %s", ascending[i], ascending[j])
			case i > j:
				assert.Equal(t, 1, got, "%s > %s", ascending[i], ascending[j])
			default:
				assert.Equal(t, 0, got)
			}
		}
	}
}

func TestCompare_ZeroPaddedRelease(t *testing.T) {
	assert.Equal(t, 0, parse(t, "1.0").Compare(parse(t, "1.0.0")))
	assert.Equal(t, 0, parse(t, "0!1").Compare(parse(t, "1.0")))
}

func TestSortDescending_LongReleaseNumbersAreVersions(t *testing.T) {
	got := SortDescending([]string{"main", "1.0", "99999999999999999999", "zzz", "2.0"})
	assert.Equal(t, []string{"99999999999999999999", "2.0", "1.0", "zzz", "main"}, got)
	assert.Equal(t, 0, KeyFor("99999999999999999999").Tag())
}
