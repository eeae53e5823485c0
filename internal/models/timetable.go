package models

// TimetableEntry is one scheduled event inside a date bucket. All fields are
// strings on the wire; duration carries an hour-unit suffix such as "1.5 hours".
type TimetableEntry struct {
	Date     string `json:"date"`
	Subject  string `json:"subject"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
}

// Complete reports whether every field required for persistence is present.
func (e TimetableEntry) Complete() bool {
	return e.Date != "" && e.Subject != "" && e.Time != "" && e.Duration != ""
}

// DateBucket holds all entries for one user and one calendar date. Within a
// bucket at most one entry exists per distinct time value; the invariant is
// enforced by replace-on-write, not by a uniqueness constraint.
type DateBucket struct {
	Updates []TimetableEntry `json:"updates"`
}

// UserTimetable maps date keys to their buckets for a single user.
type UserTimetable map[string]DateBucket
