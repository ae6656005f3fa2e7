package youtubeapi

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoDurationRegex matches the ISO 8601 durations the Data API returns, e.g. PT4M13S or P1DT2H
var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration into seconds
func ParseISODuration(s string) (float64, error) {
	m := isoDurationRegex.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	multipliers := []float64{86400, 3600, 60, 1}
	var total float64
	for i, mult := range multipliers {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
		}
		total += v * mult
	}
	return total, nil
}
