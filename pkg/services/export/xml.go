package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Source yields extracted records one at a time. Next returns io.EOF once the
// export is exhausted.
type Source interface {
	Next() (domain.Record, error)
	Close() error
}

const (
	typeHeartRate    = "HKQuantityTypeIdentifierHeartRate"
	typeLowHeartRate = "HKCategoryTypeIdentifierLowHeartRateEvent"
	typeSleep        = "HKCategoryTypeIdentifierSleepAnalysis"

	sleepValuePrefix  = "HKCategoryValueSleepAnalysis"
	workoutTypePrefix = "HKWorkoutActivityType"
	exportTimeLayout  = "2006-01-02 15:04:05"
	fallbackActivity  = "Other"
)

// XMLSource streams records out of a health export file token by token; the
// document is never held in memory whole.
type XMLSource struct {
	rc        io.ReadCloser
	dec       *xml.Decoder
	malformed int
}

// NewXMLSource opens an export file for streaming extraction.
func NewXMLSource(path string) (*XMLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	return &XMLSource{rc: f, dec: xml.NewDecoder(f)}, nil
}

// Next returns the next recognized record. Elements of other types pass by
// silently; recognized records missing required fields are dropped, counted,
// and extraction continues.
func (s *XMLSource) Next() (domain.Record, error) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var rec domain.Record
		var parseErr error
		switch start.Name.Local {
		case "Record":
			rec, parseErr = parseRecord(start)
		case "Workout":
			rec, parseErr = parseWorkout(start)
		default:
			continue
		}
		if err := s.dec.Skip(); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to skip element body: %w", err)
		}
		if parseErr != nil {
			s.malformed++
			continue
		}
		if rec == nil {
			continue
		}
		return rec, nil
	}
}

// Malformed reports how many recognized records were dropped so far.
func (s *XMLSource) Malformed() int { return s.malformed }

func (s *XMLSource) Close() error { return s.rc.Close() }

func attrMap(e xml.StartElement) map[string]string {
	m := make(map[string]string, len(e.Attr))
	for _, a := range e.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

func parseRecord(e xml.StartElement) (domain.Record, error) {
	a := attrMap(e)
	switch a["type"] {
	case typeHeartRate:
		start, err := parseExportTime(a["startDate"])
		if err != nil {
			return nil, err
		}
		bpm, err := strconv.ParseFloat(a["value"], 64)
		if err != nil {
			return nil, fmt.Errorf("bad heart rate value %q: %w", a["value"], err)
		}
		return domain.HeartRateSample{Start: start, Source: a["sourceName"], BPM: bpm}, nil

	case typeLowHeartRate:
		start, err := parseExportTime(a["startDate"])
		if err != nil {
			return nil, err
		}
		end, err := parseExportTime(a["endDate"])
		if err != nil {
			return nil, err
		}
		return domain.LowHeartRateEvent{Start: start, End: end, Source: a["sourceName"]}, nil

	case typeSleep:
		start, err := parseExportTime(a["startDate"])
		if err != nil {
			return nil, err
		}
		end, err := parseExportTime(a["endDate"])
		if err != nil {
			return nil, err
		}
		stage := strings.TrimPrefix(a["value"], sleepValuePrefix)
		return domain.SleepStageInterval{
			Start:  start,
			End:    end,
			Source: a["sourceName"],
			Stage:  domain.SleepStage(stage),
		}, nil
	}
	return nil, nil
}

func parseWorkout(e xml.StartElement) (domain.Record, error) {
	a := attrMap(e)
	start, err := parseExportTime(a["startDate"])
	if err != nil {
		return nil, err
	}
	end, err := parseExportTime(a["endDate"])
	if err != nil {
		return nil, err
	}

	dur := 0.0
	if raw := a["duration"]; raw != "" {
		dur, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad workout duration %q: %w", raw, err)
		}
		if a["durationUnit"] == "sec" {
			dur /= 60
		}
	}

	return domain.Workout{
		Start:        start,
		End:          end,
		Source:       a["sourceName"],
		ActivityType: CleanActivityType(a["workoutActivityType"]),
		DurationMin:  dur,
	}, nil
}

// CleanActivityType turns raw identifiers like
// HKWorkoutActivityTypeTraditionalStrengthTraining into readable names like
// "Traditional Strength Training".
func CleanActivityType(raw string) string {
	name := strings.TrimPrefix(raw, workoutTypePrefix)
	if name == "" {
		return fallbackActivity
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Export timestamps carry a numeric zone offset; it is stripped and
// discarded, keeping the wall-clock reading exactly as written.
var offsetSuffix = regexp.MustCompile(` [+-]\d{4}$`)

func parseExportTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	t, err := time.ParseInLocation(exportTimeLayout, offsetSuffix.ReplaceAllString(raw, ""), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", raw, err)
	}
	return t, nil
}
