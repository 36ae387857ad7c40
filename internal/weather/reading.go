package weather

// Reading is the normalized in-memory result of one upstream fetch. City and
// country carry the spelling the provider resolved, which may differ from the
// requested city name. Units is a request-time tag and is not persisted with
// the cached snapshot.
type Reading struct {
	CityName           string  `json:"city_name"`
	CountryCode        string  `json:"country_code"`
	Temperature        float64 `json:"temperature"`
	FeelsLike          float64 `json:"feels_like"`
	TempMin            float64 `json:"temp_min"`
	TempMax            float64 `json:"temp_max"`
	Pressure           int     `json:"pressure"`
	Humidity           int     `json:"humidity"`
	WeatherMain        string  `json:"weather_main"`
	WeatherDescription string  `json:"weather_description"`
	WeatherIcon        string  `json:"weather_icon"`
	WindSpeed          float64 `json:"wind_speed"`
	WindDeg            int     `json:"wind_deg"`
	Clouds             int     `json:"clouds"`
	Units              string  `json:"units"`
}
