package dump

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/whattoread/ingest/core"
)

// Record is a candidate work decoded from one dump line. Loosely typed
// payload fields are resolved here: absent or mistyped optional fields
// yield zero values, never errors.
type Record struct {
	Key      string
	Type     string // normalized type key, from a bare string or a {key} object
	Title    string
	Subjects []string
	Authors  []string // raw author key references, in payload order
	Year     *int
}

// payload mirrors the JSON column of a dump line. Fields whose shape
// varies across the corpus stay raw and are decoded leniently afterwards.
type payload struct {
	Key              string          `json:"key"`
	Title            string          `json:"title"`
	Type             json.RawMessage `json:"type"`
	Subjects         json.RawMessage `json:"subjects"`
	Authors          json.RawMessage `json:"authors"`
	FirstPublishDate json.RawMessage `json:"first_publish_date"`
	FirstPublishYear json.RawMessage `json:"first_publish_year"`
}

type keyRef struct {
	Key string `json:"key"`
}

// authorEntry accepts both author shapes found in dumps:
// {"author": {"key": "/authors/OL1A"}} and {"key": "/authors/OL1A"}.
type authorEntry struct {
	Author *keyRef `json:"author"`
	Key    string  `json:"key"`
}

// ParseLine decodes one dump line into a Record.
//
// A line has five tab-separated fields: type, key, revision, last-modified,
// JSON payload. Lines with fewer fields fail with ErrMalformedLine; an
// undecodable payload fails with ErrInvalidPayload. When the payload omits
// its own type or key they are backfilled from the first two fields.
func ParseLine(line string) (*Record, error) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: %d of 5 fields", ErrMalformedLine, len(fields))
	}

	var p payload
	if err := json.Unmarshal([]byte(fields[4]), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	rec := &Record{
		Key:      p.Key,
		Title:    p.Title,
		Subjects: decodeSubjects(p.Subjects),
		Authors:  decodeAuthors(p.Authors),
		Year:     decodeYear(p.FirstPublishDate, p.FirstPublishYear),
	}

	rec.Type = decodeType(p.Type)
	if rec.Type == "" {
		rec.Type = fields[0]
	}
	if rec.Key == "" {
		rec.Key = fields[1]
	}

	return rec, nil
}

// Work converts the record into its persistable form, deriving the
// canonical search text.
func (r *Record) Work() *core.Work {
	return &core.Work{
		Key:              r.Key,
		Title:            r.Title,
		Authors:          r.Authors,
		Subjects:         r.Subjects,
		FirstPublishYear: r.Year,
		SearchText:       SearchText(r.Title, r.Subjects),
	}
}

// decodeType normalizes the type field. Dumps carry it either as a bare
// string ("/type/work") or as an object ({"key": "/type/work"}).
func decodeType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var ref keyRef
	if err := json.Unmarshal(raw, &ref); err == nil {
		return ref.Key
	}
	return ""
}

func decodeSubjects(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var subjects []string
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil
	}
	return subjects
}

// decodeAuthors extracts raw author key references in order. Resolution of
// keys to human names belongs to the serving-side enrichment, not here.
func decodeAuthors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var entries []authorEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	var keys []string
	for _, entry := range entries {
		switch {
		case entry.Author != nil && entry.Author.Key != "":
			keys = append(keys, entry.Author.Key)
		case entry.Key != "":
			keys = append(keys, entry.Key)
		}
	}
	return keys
}

// decodeYear extracts the first-publish year. The dated form
// first_publish_date.value wins when its leading four characters are all
// digits; otherwise the plain first_publish_year field (number or string)
// is truncated the same way and parsed. Any failure yields nil.
func decodeYear(date, year json.RawMessage) *int {
	if len(date) > 0 {
		var d struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(date, &d); err == nil && d.Value != "" {
			if y, ok := yearFromDate(d.Value); ok {
				return &y
			}
			return nil
		}
	}

	if len(year) > 0 {
		var n json.Number
		if err := json.Unmarshal(year, &n); err == nil {
			if y, ok := yearFromValue(n.String()); ok {
				return &y
			}
			return nil
		}
		var s string
		if err := json.Unmarshal(year, &s); err == nil {
			if y, ok := yearFromValue(s); ok {
				return &y
			}
		}
	}

	return nil
}

// yearFromDate accepts "YYYY" or "YYYY-MM-DD" style values: the first four
// characters must all be digits.
func yearFromDate(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	prefix := s[:4]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return y, true
}

// yearFromValue truncates to at most four characters and parses what is
// left, so short years like "985" still resolve.
func yearFromValue(s string) (int, bool) {
	if len(s) > 4 {
		s = s[:4]
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}
