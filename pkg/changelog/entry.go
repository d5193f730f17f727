package changelog

// Entry is one row of a changelog artifact.
//
// A trunk-sourced changelog holds exactly one Entry whose Description is the
// release section and whose other fields are empty. Ranking is left empty
// for reviewers to fill in.
type Entry struct {
	ID          int // pull request number, 0 when unset
	Title       string
	Author      string
	Labels      []string
	URL         string
	Description string
	Ranking     string
}

// Origin names where a changelog came from.
type Origin string

const (
	OriginTrunk     Origin = "trunk"
	OriginMilestone Origin = "milestone"
)
