package domain

import "sort"

// Vote round point values for a correct first vote
const (
	PointsRound1 = 900
	PointsRound2 = 600
	PointsRound3 = 300
)

// PlayerAward is the scoring outcome for one non-imposter
type PlayerAward struct {
	Player   string `json:"player"`
	VotedFor string `json:"votedFor,omitempty"`
	Points   int    `json:"points"`
}

// ScoreRow is one line of the scoreboard
type ScoreRow struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Place int    `json:"place,omitempty"`
}

// PointsForVote returns the award for a non-imposter's first vote of the
// round. Only that first vote counts, scored by the vote round it was cast
// in; a missing vote or one naming the wrong player is worth nothing.
func PointsForVote(v *Vote, imposter string) int {
	if v == nil || v.Target != imposter {
		return 0
	}
	switch v.Round {
	case 1:
		return PointsRound1
	case 2:
		return PointsRound2
	default:
		return PointsRound3
	}
}

// ImposterPoints computes the imposter's award: a 900-point pot reduced by
// an equal share for each non-imposter who guessed right, floored at zero
func ImposterPoints(nonImposterCount, correctVotes int) int {
	if nonImposterCount <= 0 {
		return 0
	}
	pts := PointsRound1 - (PointsRound1/nonImposterCount)*correctVotes
	if pts < 0 {
		pts = 0
	}
	return pts
}

// CalculateAwards derives the per-player awards for a finished round and
// the count of correct votes, in roster order
func CalculateAwards(g *Game, players []*Player) ([]PlayerAward, int) {
	awards := make([]PlayerAward, 0, len(players))
	correct := 0
	for _, p := range players {
		if p.Name == g.ImposterName {
			continue
		}
		v := g.FirstVoteOf(p.Name)
		pts := PointsForVote(v, g.ImposterName)
		if pts > 0 {
			correct++
		}
		award := PlayerAward{Player: p.Name, Points: pts}
		if v != nil {
			award.VotedFor = v.Target
		}
		awards = append(awards, award)
	}
	return awards, correct
}

// Scoreboard returns players ranked by descending cumulative score. The
// sort is stable so ties keep their roster order.
func Scoreboard(players []*Player) []ScoreRow {
	rows := make([]ScoreRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, ScoreRow{Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	for i := range rows {
		rows[i].Place = i + 1
	}
	return rows
}

// Winner returns the highest-scoring player; ties resolve to the earliest
// player in roster order
func Winner(players []*Player) *Player {
	var best *Player
	for _, p := range players {
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	return best
}
