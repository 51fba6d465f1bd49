package srs

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Quality is the reviewer's ordinal grade for one recall attempt.
//
// The value 1 is intentionally absent from the scale: only 0, 2, 3, and 4
// are defined, and Review rejects anything else.
type Quality int

const (
	Again Quality = 0 // Complete failure to recall.
	Hard  Quality = 2 // Recalled, but counted as a failing grade.
	Good  Quality = 3 // Recalled with some effort.
	Easy  Quality = 4 // Recalled effortlessly.
)

var qualityNames = map[Quality]string{
	Again: "again",
	Hard:  "hard",
	Good:  "good",
	Easy:  "easy",
}

var qualityByName = map[string]Quality{
	"again": Again,
	"hard":  Hard,
	"good":  Good,
	"easy":  Easy,
}

var (
	_ fmt.Stringer             = Quality(0)
	_ json.Marshaler           = Quality(0)
	_ json.Unmarshaler         = (*Quality)(nil)
	_ encoding.TextMarshaler   = Quality(0)
	_ encoding.TextUnmarshaler = (*Quality)(nil)
)

// IsValid reports whether q is one of the defined grades.
func (q Quality) IsValid() bool {
	_, ok := qualityNames[q]
	return ok
}

// String returns the lowercase grade name, or "quality(n)" for undefined
// values.
func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// ParseQuality accepts a grade name ("again", "hard", "good", "easy").
func ParseQuality(s string) (Quality, error) {
	if q, ok := qualityByName[s]; ok {
		return q, nil
	}
	return 0, fmt.Errorf("srs: unknown quality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("srs: invalid quality: %d", int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// MarshalJSON implements json.Marshaler. Quality serializes as a string.
func (q Quality) MarshalJSON() ([]byte, error) {
	text, err := q.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (q *Quality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("srs: invalid quality: %s", data)
	}
	return q.UnmarshalText([]byte(s))
}
