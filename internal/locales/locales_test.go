package locales_test

import (
	"testing"

	"github.com/hotelvalmont/cms-server/internal/locales"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantLocale string
		wantRest   string
	}{
		{"unprefixed path", "/admin/rooms", "fr", "/admin/rooms"},
		{"english prefix", "/en/admin/rooms", "en", "/admin/rooms"},
		{"german prefix", "/de/contact", "de", "/contact"},
		{"bare locale", "/en", "en", "/"},
		{"locale with trailing slash", "/en/", "en", "/"},
		{"unknown segment is not a locale", "/xx/admin/rooms", "fr", "/xx/admin/rooms"},
		{"root", "/", "fr", "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			locale, rest := locales.Split(tc.path)
			require.Equal(t, tc.wantLocale, locale)
			require.Equal(t, tc.wantRest, rest)
		})
	}
}

func TestQualify(t *testing.T) {
	require.Equal(t, "/contact", locales.Qualify("fr", "/contact"))
	require.Equal(t, "/en/contact", locales.Qualify("en", "/contact"))
	require.Equal(t, "/", locales.Qualify("fr", "/"))
	require.Equal(t, "/en", locales.Qualify("en", "/"))
}

func TestExpand(t *testing.T) {
	require.Equal(t, []string{"/contact", "/en/contact", "/de/contact"}, locales.Expand("/contact"))
	require.Equal(t, []string{"/", "/en", "/de"}, locales.Expand("/"))
}
