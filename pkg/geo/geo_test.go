package geo

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagEmoji(t *testing.T) {
	require.Equal(t, "🇺🇸", FlagEmoji("US"))
	require.Equal(t, "🇨🇳", FlagEmoji("CN"))
	require.Equal(t, "🇯🇵", FlagEmoji("jp")) // 小写也接受

	for _, bad := range []string{"", "U", "USA", "1A", "ÅL"} {
		require.Empty(t, FlagEmoji(bad), "input: %q", bad)
	}
}

func TestCountryFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	require.Empty(t, CountryFromRequest(req))

	req.Header.Set("cf-ipcountry", "DE")
	require.Equal(t, "DE", CountryFromRequest(req))

	// Vercel头优先于Cloudflare头
	req.Header.Set("x-vercel-ip-country", "JP")
	require.Equal(t, "JP", CountryFromRequest(req))
}

func TestCityFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	require.Empty(t, CityFromRequest(req))

	req.Header.Set("x-vercel-ip-city", "S%C3%A3o%20Paulo")
	require.Equal(t, "São Paulo", CityFromRequest(req))

	req.Header.Set("x-vercel-ip-city", "Tokyo")
	require.Equal(t, "Tokyo", CityFromRequest(req))
}
