package entities

// MatchKind tags the outcome of board resolution.
type MatchKind string

const (
	MatchReuse  MatchKind = "reuse"
	MatchCreate MatchKind = "create"
)

// MatchDecision is the single decision produced per publish attempt: either
// reuse an existing board (Board holds the candidate's exact casing) or
// create a new one under the requested name.
type MatchDecision struct {
	Kind  MatchKind `json:"kind"`
	Board string    `json:"board"`
}

// ReuseBoard - decision to file the pin into an existing board
func ReuseBoard(name string) MatchDecision {
	return MatchDecision{Kind: MatchReuse, Board: name}
}

// CreateBoard - decision to create a new board under the given name
func CreateBoard(name string) MatchDecision {
	return MatchDecision{Kind: MatchCreate, Board: name}
}
