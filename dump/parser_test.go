package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dumpLine(recordType, key, json string) string {
	return recordType + "\t" + key + "\t3\t2025-01-15T10:00:00.000000\t" + json
}

func TestParseLine(t *testing.T) {
	t.Run("complete work record", func(t *testing.T) {
		line := dumpLine("/type/work", "/works/OL45883W",
			`{"key": "/works/OL45883W", "type": {"key": "/type/work"}, "title": "Fantastic Mr Fox",`+
				` "subjects": ["Foxes", "Fiction", "Farmers"],`+
				` "authors": [{"author": {"key": "/authors/OL34184A"}}],`+
				` "first_publish_date": {"value": "1970-06-01"}}`)

		rec, err := ParseLine(line)
		require.NoError(t, err)
		assert.Equal(t, "/works/OL45883W", rec.Key)
		assert.Equal(t, "/type/work", rec.Type)
		assert.Equal(t, "Fantastic Mr Fox", rec.Title)
		assert.Equal(t, []string{"Foxes", "Fiction", "Farmers"}, rec.Subjects)
		assert.Equal(t, []string{"/authors/OL34184A"}, rec.Authors)
		require.NotNil(t, rec.Year)
		assert.Equal(t, 1970, *rec.Year)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, err := ParseLine("/type/work\t/works/OL1W\t{}")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedLine)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := ParseLine(dumpLine("/type/work", "/works/OL1W", "{not json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("backfills type and key from line fields", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("/type/work", "/works/OL2W", `{"title": "Untyped"}`))
		require.NoError(t, err)
		assert.Equal(t, "/type/work", rec.Type)
		assert.Equal(t, "/works/OL2W", rec.Key)
	})

	t.Run("payload type and key win over line fields", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("/type/redirect", "/works/OL3W",
			`{"key": "/works/OL4W", "type": "/type/work", "title": "T"}`))
		require.NoError(t, err)
		assert.Equal(t, "/type/work", rec.Type)
		assert.Equal(t, "/works/OL4W", rec.Key)
	})

	t.Run("bare string type", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("x", "/works/OL5W", `{"type": "/type/work", "title": "T"}`))
		require.NoError(t, err)
		assert.Equal(t, "/type/work", rec.Type)
	})
}

func TestParseLine_Authors(t *testing.T) {
	t.Run("nested and flat entries preserve order", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("/type/work", "/works/OL6W",
			`{"title": "T", "authors": [`+
				`{"author": {"key": "/authors/OL1A"}},`+
				`{"key": "/authors/OL2A"},`+
				`{"author": {"key": "/authors/OL3A"}}]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"/authors/OL1A", "/authors/OL2A", "/authors/OL3A"}, rec.Authors)
	})

	t.Run("entries without keys are skipped", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("/type/work", "/works/OL7W",
			`{"title": "T", "authors": [{"author": {}}, {"role": "editor"}, {"key": "/authors/OL9A"}]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"/authors/OL9A"}, rec.Authors)
	})

	t.Run("mistyped authors field yields absence", func(t *testing.T) {
		rec, err := ParseLine(dumpLine("/type/work", "/works/OL8W",
			`{"title": "T", "authors": "not a list"}`))
		require.NoError(t, err)
		assert.Empty(t, rec.Authors)
	})
}

func TestParseLine_Year(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *int
	}{
		{"dated value full date", `{"first_publish_date": {"value": "1999-12-31"}}`, intPtr(1999)},
		{"dated value year only", `{"first_publish_date": {"value": "1999"}}`, intPtr(1999)},
		{"dated value non-digit prefix", `{"first_publish_date": {"value": "c. 1999"}}`, nil},
		{"dated value too short", `{"first_publish_date": {"value": "99"}}`, nil},
		{"plain year number", `{"first_publish_year": 1985}`, intPtr(1985)},
		{"plain year string", `{"first_publish_year": "1985-06"}`, intPtr(1985)},
		{"plain year short number", `{"first_publish_year": 985}`, intPtr(985)},
		{"plain year garbage", `{"first_publish_year": "19ab"}`, nil},
		{"dated value wins over plain year", `{"first_publish_date": {"value": "1970"}, "first_publish_year": 1999}`, intPtr(1970)},
		{"no year fields", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(dumpLine("/type/work", "/works/OL1W", tt.payload))
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, rec.Year)
			} else {
				require.NotNil(t, rec.Year)
				assert.Equal(t, *tt.want, *rec.Year)
			}
		})
	}
}

func TestRecord_Work(t *testing.T) {
	year := 1970
	rec := &Record{
		Key:      "/works/OL45883W",
		Type:     "/type/work",
		Title:    "Fantastic Mr Fox",
		Subjects: []string{"Foxes", "Fiction"},
		Authors:  []string{"/authors/OL34184A"},
		Year:     &year,
	}

	work := rec.Work()
	assert.Equal(t, rec.Key, work.Key)
	assert.Equal(t, rec.Title, work.Title)
	assert.Equal(t, rec.Authors, work.Authors)
	assert.Equal(t, rec.Subjects, work.Subjects)
	assert.Equal(t, rec.Year, work.FirstPublishYear)
	assert.Equal(t, "Fantastic Mr Fox. Foxes Fiction", work.SearchText)
	assert.Empty(t, work.Vector)
}

func intPtr(v int) *int {
	return &v
}
