package dump

const (
	// DefaultMinSubjects is the default quality threshold for subject count.
	DefaultMinSubjects = 3

	// WorkTypeKey is the type marker identifying work-level records.
	WorkTypeKey = "/type/work"
)

// QualityFilter is the ingestion quality gate. A record passes only when it
// carries at least MinSubjects subjects, a non-empty title, and the work
// type marker.
type QualityFilter struct {
	MinSubjects int
	WorkType    string
}

// NewQualityFilter creates a filter for work records with the given subject
// threshold. Non-positive thresholds fall back to DefaultMinSubjects.
func NewQualityFilter(minSubjects int) *QualityFilter {
	if minSubjects <= 0 {
		minSubjects = DefaultMinSubjects
	}
	return &QualityFilter{
		MinSubjects: minSubjects,
		WorkType:    WorkTypeKey,
	}
}

// Evaluate returns nil when the record passes the quality gate, or the
// rejection reason otherwise.
func (f *QualityFilter) Evaluate(rec *Record) error {
	if len(rec.Subjects) < f.MinSubjects {
		return ErrTooFewSubjects
	}
	if rec.Title == "" {
		return ErrMissingTitle
	}
	if rec.Type != f.WorkType {
		return ErrNotWork
	}
	return nil
}
