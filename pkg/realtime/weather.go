package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
)

const (
	// WeatherUnavailable is returned in place of real-time data when the
	// weather lookup fails.
	WeatherUnavailable = "Sorry, I couldn't fetch the weather data right now."

	kelvinOffset = 273.15
)

// Conditions is the subset of a current-weather response used in prompts.
type Conditions struct {
	City        string
	TempKelvin  float64
	Description string
}

// Celsius converts the reported temperature from Kelvin.
func (c Conditions) Celsius() float64 {
	return c.TempKelvin - kelvinOffset
}

// String renders the one-sentence summary spliced into the prompt.
func (c Conditions) String() string {
	return fmt.Sprintf("The current temperature in %s is %.2f°C with %s.", c.City, c.Celsius(), c.Description)
}

// WeatherSource answers weather questions via a geocoder and the
// OpenWeather current-weather endpoint.
type WeatherSource struct {
	Geocoder Geocoder
	BaseURL  string
	APIKey   string
	HTTP     *http.Client
	Logger   loggerpkg.Logger
}

func (s *WeatherSource) Name() string     { return NameWeather }
func (s *WeatherSource) Keyword() string  { return "weather" }
func (s *WeatherSource) Question() string { return "Which city's weather would you like to know? " }

// Fetch returns the weather sentence for city, or WeatherUnavailable.
func (s *WeatherSource) Fetch(ctx context.Context, city string) string {
	conditions, err := s.Current(ctx, city)
	if err != nil {
		logFetchError(s.Logger, NameWeather, city, err)
		return WeatherUnavailable
	}
	return conditions.String()
}

// Current resolves city and fetches its current conditions.
func (s *WeatherSource) Current(ctx context.Context, city string) (Conditions, error) {
	if s.Geocoder == nil {
		return Conditions{}, errors.New("weather: geocoder is required")
	}
	coords, err := s.Geocoder.Geocode(ctx, city)
	if err != nil {
		return Conditions{}, err
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("appid", s.APIKey)

	body, err := getJSON(ctx, s.HTTP, s.BaseURL, "/data/2.5/weather", query, nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("weather: %w", err)
	}

	temp := body.Get("main.temp")
	desc := body.Get("weather.0.description")
	if !temp.Exists() || !desc.Exists() {
		return Conditions{}, fmt.Errorf("weather: %w: missing main.temp or weather[0].description", ErrMalformedResponse)
	}
	return Conditions{City: city, TempKelvin: temp.Float(), Description: desc.String()}, nil
}

func logFetchError(l loggerpkg.Logger, source, answer string, err error) {
	obj := map[string]any{"source": source, "query": answer, "error": err.Error()}
	if errors.Is(err, ErrUnexpectedStatus) {
		loggerpkg.Warn(l, "real-time fetch rejected", obj)
		return
	}
	loggerpkg.Error(l, "real-time fetch failed", obj)
}
