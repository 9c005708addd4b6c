package model

import (
	"fmt"
	"time"
)

// Sentinel metadata documents carry datetimes in several near-RFC3339 shapes:
// tileInfo timestamps have fractional seconds and a Z, product metadata
// sometimes drops the fraction or the zone designator. We need lenient
// "multi-format" parsing functionality, implemented here.

// StandardTimeLayout is the preferred format when formatting scene datetimes
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z"

var sceneTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseSceneTime is a drop-in replacement for time.Parse, but matching against
// multiple possible Sentinel metadata time formats
func ParseSceneTime(sceneTime string) (time.Time, error) {
	for _, layout := range sceneTimeLayouts {
		if output, err := time.Parse(layout, sceneTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", sceneTime)
}
