package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/railalert/internal/domain"
	"github.com/hamed0406/railalert/internal/feed"
)

var (
	// ErrMalformedTimestamp marks a record whose timestamp does not parse in
	// the feed's fixed layout, or whose description is empty.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrAmbiguousLocalTime marks a wall-clock reading that falls in a DST
	// fold (two UTC instants) or gap (none). We refuse to pick an offset.
	ErrAmbiguousLocalTime = errors.New("ambiguous local time")
)

// Normalizer converts raw feed records into canonical UTC incidents. The feed
// reports wall-clock times in one named timezone and one fixed layout.
type Normalizer struct {
	loc    *time.Location
	layout string
}

// DefaultLayout matches the feed's DateUpdated format, e.g. 2010-07-29T14:21:28.
const DefaultLayout = "2006-01-02T15:04:05"

func New(tz, layout string) (*Normalizer, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &Normalizer{loc: loc, layout: layout}, nil
}

// Normalize builds a canonical incident from one raw record.
func (n *Normalizer) Normalize(r feed.RawIncident) (domain.Incident, error) {
	if strings.TrimSpace(r.Description) == "" {
		return domain.Incident{}, fmt.Errorf("%w: empty description at %q", ErrMalformedTimestamp, r.Timestamp)
	}
	wall, err := time.Parse(n.layout, r.Timestamp)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("%w: %q does not match layout %q", ErrMalformedTimestamp, r.Timestamp, n.layout)
	}
	utc, err := resolveWall(wall, n.loc)
	if err != nil {
		return domain.Incident{}, err
	}
	return domain.Incident{OccurredAt: utc, Description: r.Description}, nil
}

// NormalizeAll converts a whole batch, preserving feed order. Any bad record
// fails the batch; errors for every bad record are aggregated so the operator
// sees them all at once. Silently dropping an incident is not an option for an
// alerting tool.
func (n *Normalizer) NormalizeAll(raw []feed.RawIncident) ([]domain.Incident, error) {
	out := make([]domain.Incident, 0, len(raw))
	var errs error
	for i, r := range raw {
		inc, err := n.Normalize(r)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, inc)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// resolveWall maps a wall-clock reading (parsed as if UTC) to the unique UTC
// instant carrying that reading in loc. The timezone database supplies the
// offsets; sampling a day on either side covers any DST transition that could
// touch the reading.
func resolveWall(wall time.Time, loc *time.Location) (time.Time, error) {
	y, mo, d := wall.Date()
	h, mi, s := wall.Clock()

	seen := make(map[int]bool, 3)
	var matches []time.Time
	for _, dt := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, off := wall.Add(dt).In(loc).Zone()
		if seen[off] {
			continue
		}
		seen[off] = true

		cand := wall.Add(-time.Duration(off) * time.Second)
		local := cand.In(loc)
		cy, cmo, cd := local.Date()
		ch, cmi, cs := local.Clock()
		if cy == y && cmo == mo && cd == d && ch == h && cmi == mi && cs == s {
			matches = append(matches, cand)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].UTC(), nil
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s does not exist in %s (DST gap)",
			ErrAmbiguousLocalTime, wall.Format(DefaultLayout), loc)
	default:
		return time.Time{}, fmt.Errorf("%w: %s occurs twice in %s (DST fold)",
			ErrAmbiguousLocalTime, wall.Format(DefaultLayout), loc)
	}
}
