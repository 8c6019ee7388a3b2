package domain

// Vote records one suspect nomination. Round is the vote round (1..3) the
// vote was cast in; it decides how many points a correct vote is worth.
type Vote struct {
	Voter  string `json:"voter"`
	Target string `json:"target"`
	Round  int    `json:"round"`
}
