package cql2

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Temporal comparison operators, canonical camelCase spelling per
// the cql2-json schema. Several variants differ from their WKT/text
// spelling only in case (T_METBY -> t_metBy); the builder folds that
// case at parse time so only this spelling ever reaches the AST.
const (
	TimeAfter        Operator = "t_after"
	TimeBefore       Operator = "t_before"
	TimeContains     Operator = "t_contains"
	TimeDisjoint     Operator = "t_disjoint"
	TimeDuring       Operator = "t_during"
	TimeEquals       Operator = "t_equals"
	TimeFinishedBy   Operator = "t_finishedBy"
	TimeFinishes     Operator = "t_finishes"
	TimeIntersects   Operator = "t_intersects"
	TimeMeets        Operator = "t_meets"
	TimeMetBy        Operator = "t_metBy"
	TimeOverlappedBy Operator = "t_overlappedBy"
	TimeOverlaps     Operator = "t_overlaps"
	TimeStartedBy    Operator = "t_startedBy"
	TimeStarts       Operator = "t_starts"
)

// Date is the DATE('YYYY-MM-DD') instant literal.
type Date struct {
	Value time.Time
}

func (Date) cql2Expression() {}
func (Date) cql2Temporal()   {}
func (Date) cql2Instant()    {}
func (Date) cql2ArrayItem()  {}

// ParseDate parses a YYYY-MM-DD string as used by both the DATE(...)
// text literal and the JSON {"date": "..."} object.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("cql2: invalid date %q: %w", s, err)
	}
	return Date{Value: t}, nil
}

// String renders the date in its canonical YYYY-MM-DD form, with no
// surrounding quotes or DATE(...) wrapper — callers needing the full
// text-literal form use RenderText.
func (d Date) String() string {
	return d.Value.Format(dateLayout)
}

// Timestamp is the TIMESTAMP('...Z') instant literal. Per the spec,
// timestamps are always UTC and always render with six fractional
// digits even when zero.
type Timestamp struct {
	Value time.Time
}

func (Timestamp) cql2Expression() {}
func (Timestamp) cql2Temporal()   {}
func (Timestamp) cql2Instant()    {}
func (Timestamp) cql2ArrayItem()  {}

// ParseTimestamp parses an ISO 8601 UTC timestamp, accepting an
// optional fractional-seconds component of any length and requiring
// the trailing "Z" the spec mandates.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999Z",
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Value: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("cql2: invalid timestamp %q", s)
}

// String renders the timestamp in its canonical
// YYYY-MM-DDTHH:MM:SS.ffffffZ form (microseconds always present, six
// digits, UTC).
func (t Timestamp) String() string {
	return t.Value.UTC().Format(timestampLayout)
}

// Interval is INTERVAL(start, end). Start or End is nil to represent
// the open (unbounded) ".." endpoint on that side; otherwise each is
// a Date, Timestamp, PropertyRef, or FunctionRef.
type Interval struct {
	Start InstantExpression
	End   InstantExpression
}

func (*Interval) cql2Expression() {}
func (*Interval) cql2Temporal()   {}

// TemporalComparison is a T_* predicate comparing two temporal
// expressions (instants, intervals, or property/function refs).
type TemporalComparison struct {
	Name  Operator
	Left  TemporalExpression
	Right TemporalExpression
}

func (*TemporalComparison) cql2Expression() {}
func (*TemporalComparison) cql2Boolean()    {}
