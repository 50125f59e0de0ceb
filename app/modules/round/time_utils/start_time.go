package roundtime

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	roundutil "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/utils"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognizedStartTime is returned when neither a known layout nor the
// natural-language parser understands the input.
var ErrUnrecognizedStartTime = errors.New("could not recognize round start time")

var compactTimePattern = regexp.MustCompile(`(\d{1,2})(\d{2})\s*(am|pm)`)

// layouts are tried in order against "<date> <time>" before falling back to `when`.
var layouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 pm",
	"2006-01-02 3:04pm",
	"2006-01-02 3 pm",
	"2006-01-02 3pm",
	"01/02/2006 15:04",
	"01/02/2006 3:04 pm",
	"01/02/2006 3pm",
	"2006-01-02t15:04",
}

// Parser turns a round's free-form date and time into an instant.
type Parser struct {
	w *when.Parser
}

// NewParser creates a Parser with the English `when` rules.
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return &Parser{w: w}
}

// ParseStartTime combines date and timeOfDay in loc. Strict layouts are tried
// first; anything else ("tomorrow", "next friday") goes through `when`,
// relative to clock.Now().
func (p *Parser) ParseStartTime(date, timeOfDay string, loc *time.Location, clock roundutil.Clock) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	input := normalize(date + " " + timeOfDay)
	if input == "" {
		return time.Time{}, ErrUnrecognizedStartTime
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	natural := normalize(date + " at " + timeOfDay)
	r, err := p.w.Parse(natural, clock.Now().In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedStartTime, natural, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedStartTime, natural)
	}

	return r.Time.In(loc).Truncate(time.Minute), nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "a.m.", "am")
	s = strings.ReplaceAll(s, "p.m.", "pm")
	// "932am" -> "9:32 am"
	return compactTimePattern.ReplaceAllString(s, "$1:$2 $3")
}
