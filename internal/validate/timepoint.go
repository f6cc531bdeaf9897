package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampThreshold separates numeric hour offsets from Unix timestamps.
const TimestampThreshold = 1_000_000_000

var (
	relativePattern = regexp.MustCompile(`^\+([0-9]{1,9})([mhdMHD])$`)
	unixPattern     = regexp.MustCompile(`^[0-9]{1,12}$`)
	durationPattern = regexp.MustCompile(`^([0-9]{1,12})([smhd]?)$`)

	isoLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

var unitSeconds = map[string]int64{
	"":  1,
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// ParseTimePoint accepts "+<N>m|h|d" (any case) relative to now, an ISO-8601 date or
// date-time, or a decimal Unix timestamp, and returns Unix seconds.
// Zone-less ISO values are read as UTC.
func (v *Validator) ParseTimePoint(input string) (int64, error) {
	if err := checkLength("Deadline", input, v.limits.TimePoint); err != nil {
		return 0, err
	}
	s := strings.TrimSpace(input)
	if m := relativePattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return v.now().Unix() + n*unitSeconds[strings.ToLower(m[2])], nil
	}
	if unixPattern.MatchString(s) {
		ts, _ := strconv.ParseInt(s, 10, 64)
		return ts, nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, newError(KindInvalidFormat, "Deadline",
		"Deadline must be a Unix timestamp, a relative offset like +24h, or an ISO-8601 date")
}

// ParseTimePointNumber reads values below TimestampThreshold as hours from
// now and larger values as a Unix timestamp.
func (v *Validator) ParseTimePointNumber(n float64) (int64, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, newError(KindInvalidFormat, "Deadline", "Deadline must be a non-negative finite number")
	}
	if n >= TimestampThreshold {
		if n > math.MaxInt64/2 {
			return 0, newError(KindInvalidFormat, "Deadline", "Deadline timestamp is out of range")
		}
		return int64(n), nil
	}
	return v.now().Unix() + int64(math.Round(n*3600)), nil
}

// ParseDuration accepts "<N>s|m|h|d" or a bare integer of seconds.
func (v *Validator) ParseDuration(input string) (int64, error) {
	if err := checkLength("Duration", input, v.limits.Duration); err != nil {
		return 0, err
	}
	s := strings.ToLower(strings.TrimSpace(input))
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, newError(KindInvalidFormat, "Duration", "Duration must be a number of seconds or use s, m, h or d, like 90m")
	}
	n, _ := strconv.ParseInt(m[1], 10, 64)
	return n * unitSeconds[m[2]], nil
}

// ParseDurationNumber accepts a whole, non-negative number of seconds.
func (v *Validator) ParseDurationNumber(n float64) (int64, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n != math.Trunc(n) || n > 1e15 {
		return 0, newError(KindInvalidFormat, "Duration", "Duration must be a whole, non-negative number of seconds")
	}
	return int64(n), nil
}

// RequireFuture rejects time points at or before now.
func (v *Validator) RequireFuture(ts int64) error {
	if now := v.now().Unix(); ts <= now {
		return newError(KindOutOfRange, "Deadline", "Deadline %s is not in the future", time.Unix(ts, 0).UTC().Format(time.RFC3339))
	}
	return nil
}

// WithinHorizon rejects time points further than horizon from now.
func (v *Validator) WithinHorizon(ts int64, horizon time.Duration) error {
	limit := v.now().Add(horizon).Unix()
	if ts > limit {
		return newError(KindOutOfRange, "Deadline", "Deadline is more than %s away", horizon)
	}
	return nil
}
