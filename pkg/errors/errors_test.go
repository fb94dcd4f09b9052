package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodingServiceError_CarriesStatusCode(t *testing.T) {
	err := NewGeocodingServiceError(503)

	assert.Equal(t, ErrorTypeExternal, err.Type)
	assert.Equal(t, 503, err.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestIsType_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", NewAddressNotFoundError("nowhere"))

	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(wrapped, ErrorTypeExternal))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeNotFound))
}

func TestStatusCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewGeocodingServiceError(429))
	assert.Equal(t, 429, StatusCodeOf(wrapped))
	assert.Equal(t, 0, StatusCodeOf(NewAddressNotFoundError("x")))
	assert.Equal(t, 0, StatusCodeOf(fmt.Errorf("plain")))
}

func TestDataLoadError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("open data.csv: no such file")
	err := NewDataLoadError("cannot read dataset", cause)

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeDataLoad, appErr.Type)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DATA_LOAD: cannot read dataset: open data.csv: no such file", err.Error())
}
