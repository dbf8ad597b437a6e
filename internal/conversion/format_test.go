package conversion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "5,600.00", FormatAmount(5600))
	require.Equal(t, "0.00", FormatAmount(0))
	require.Equal(t, "1,234,567.89", FormatAmount(1234567.891))
	require.Equal(t, "12.50", FormatAmount(12.5))
	require.Equal(t, "-", FormatAmount(math.NaN()))
}

func TestFormatter_Locale(t *testing.T) {
	f, err := NewFormatter("de")
	require.NoError(t, err)
	require.Equal(t, "1.234.567,89", f.FormatAmount(1234567.891))
}

func TestFormatter_FormatNumber(t *testing.T) {
	f, err := NewFormatter("en")
	require.NoError(t, err)
	require.Equal(t, "100", f.FormatNumber(100))
	require.Equal(t, "1,250.5", f.FormatNumber(1250.5))
}

func TestFormatter_FormatRate(t *testing.T) {
	f, err := NewFormatter("en-US")
	require.NoError(t, err)
	require.Equal(t, "1 USD = 56.0000 PHP", f.FormatRate("USD", 56, "PHP"))
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse display locale")
}
