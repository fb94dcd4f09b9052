package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cinemamap/backend/internal/domain/entities"
	"github.com/cinemamap/backend/internal/domain/providers"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

const (
	adresseSearchURL   = "https://api-adresse.data.gouv.fr/search/"
	defaultHTTPTimeout = 10 * time.Second
)

// AdresseGeolocationProvider resolves French addresses and postcodes with the
// national address API.
type AdresseGeolocationProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewAdresseGeolocationProvider creates a provider for the public endpoint.
func NewAdresseGeolocationProvider(timeout time.Duration) providers.GeolocationProvider {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewAdresseGeolocationProviderWithOptions(adresseSearchURL, &http.Client{Timeout: timeout})
}

// NewAdresseGeolocationProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewAdresseGeolocationProviderWithOptions(baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = adresseSearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &AdresseGeolocationProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Geocode returns the best match for address. An address without any match
// is a NOT_FOUND error; a failing service is an EXTERNAL error carrying the
// HTTP status.
func (a *AdresseGeolocationProvider) Geocode(ctx context.Context, address string) (*entities.GeoPoint, error) {
	query := SearchQuery(address)
	if query == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	reqURL := fmt.Sprintf("%s?q=%s", a.baseURL, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build geocode request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().
			Int("status", resp.StatusCode).
			Str("address", address).
			Msg("Geocoding service returned an error status")
		return nil, apperrors.NewGeocodingServiceError(resp.StatusCode)
	}

	var payload adresseSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	if len(payload.Features) == 0 {
		return nil, apperrors.NewAddressNotFoundError(address)
	}

	coords := payload.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return nil, apperrors.NewExternalError("geocode response has no coordinates", nil)
	}
	point := entities.GeoPoint{Longitude: coords[0], Latitude: coords[1]}
	if !point.Valid() {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("geocode response has out of range coordinates %v", coords), nil)
	}

	log.Debug().
		Str("address", address).
		Str("label", payload.Features[0].Properties.Label).
		Float64("longitude", point.Longitude).
		Float64("latitude", point.Latitude).
		Msg("Address geocoded")

	return &point, nil
}

// SearchQuery turns free text into the q parameter: runs of whitespace become
// a single '+' and each word is query-escaped.
func SearchQuery(address string) string {
	words := strings.Fields(address)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "+")
}

type adresseSearchResponse struct {
	Features []adresseFeature `json:"features"`
}

type adresseFeature struct {
	Geometry   adresseGeometry   `json:"geometry"`
	Properties adresseProperties `json:"properties"`
}

type adresseGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type adresseProperties struct {
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Postcode string  `json:"postcode"`
	City     string  `json:"city"`
}
