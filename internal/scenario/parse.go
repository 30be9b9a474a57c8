package scenario

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultStartTime anchors scenarios that omit start_time.
const DefaultStartTime = "2024-01-01T09:00:00Z"

// ParseError reports a structurally invalid scenario document. It is fatal
// to the scenario it describes but must not abort sibling scenarios in a
// batch; callers surface it per file.
type ParseError struct {
	Path    string // source file, empty when parsing raw bytes
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rawScenario mirrors the on-disk scenario schema.
type rawScenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Seed        int64      `yaml:"seed"`
	StartTime   string     `yaml:"start_time"`
	Events      []rawEvent `yaml:"events"`
}

type rawEvent struct {
	Event  string         `yaml:"event"`
	Entity string         `yaml:"entity"`
	After  string         `yaml:"after"`
	Values map[string]any `yaml:"values"`
}

// ParseFile reads and parses one scenario file.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("reading scenario: %v", err), Err: err}
	}
	s, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return nil, perr
		}
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return s, nil
}

// Parse decodes a scenario document into a Scenario value. It is a pure
// transformation with no side effects.
func Parse(data []byte) (*Scenario, error) {
	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("decoding scenario: %v", err), Err: err}
	}

	name := raw.Name
	if name == "" {
		name = "unnamed"
	}

	startRaw := raw.StartTime
	if startRaw == "" {
		startRaw = DefaultStartTime
	}
	start, err := parseTimestamp(startRaw)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("malformed start_time %q: %v", startRaw, err), Err: err}
	}

	s := &Scenario{
		Name:        name,
		Description: raw.Description,
		Seed:        raw.Seed,
		StartTime:   start,
	}

	for i, re := range raw.Events {
		if re.Event == "" || re.Entity == "" {
			return nil, &ParseError{Message: fmt.Sprintf("malformed event %d: missing required field", i)}
		}
		values := re.Values
		if values == nil {
			values = map[string]any{}
		}
		s.Events = append(s.Events, Event{
			EventType: re.Event,
			Entity:    re.Entity,
			After:     ParseDuration(re.After),
			Values:    values,
		})
	}

	return s, nil
}

// durationPattern accepts a single integer-and-unit pair. Composite
// durations like "1h30m" are not supported; only the leading pair counts.
var durationPattern = regexp.MustCompile(`^(\d+)([smhd])`)

// ParseDuration parses compact duration strings like "24h", "30d", "5m".
// Strings that do not match the pattern yield a zero duration; malformed
// offsets are a degraded case, not a hard error.
func ParseDuration(s string) time.Duration {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second
	case "m":
		return time.Duration(n) * time.Minute
	case "h":
		return time.Duration(n) * time.Hour
	case "d":
		return time.Duration(n) * 24 * time.Hour
	}
	return 0
}

// parseTimestamp parses an ISO-8601 timestamp. A trailing "Z" is UTC; a
// bare local timestamp without offset is also accepted and read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
}
