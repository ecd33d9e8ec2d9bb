package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePageDefaults(t *testing.T) {
	page := ParsePage(url.Values{})
	require.Equal(t, DefaultLimit, page.Limit)
	require.Equal(t, 0, page.Offset)
}

func TestParsePageCapsLimit(t *testing.T) {
	page := ParsePage(url.Values{"limit": {"5000"}, "offset": {"40"}})
	require.Equal(t, MaxLimit, page.Limit)
	require.Equal(t, 40, page.Offset)
}

func TestParsePageIgnoresMalformedValues(t *testing.T) {
	page := ParsePage(url.Values{"limit": {"abc"}, "offset": {"-3"}})
	require.Equal(t, DefaultLimit, page.Limit)
	require.Equal(t, 0, page.Offset)
}
