package weather

import (
	"fmt"

	"github.com/terraincognita07/skycast/internal/models"
)

const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// IconURL builds the provider icon URL for an icon code. The code is
// interpolated as-is; no format validation is performed.
func IconURL(iconCode string) string {
	return fmt.Sprintf(iconURLTemplate, iconCode)
}

// FormatTemperature renders a temperature with one decimal place and the
// unit glyph for the given unit system.
func FormatTemperature(value float64, units string) string {
	symbol := "°F"
	if units == models.UnitMetric {
		symbol = "°C"
	}
	return fmt.Sprintf("%.1f%s", value, symbol)
}
