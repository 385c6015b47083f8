package shot

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

const gameDateLayout = "20060102"

// Summary aggregates one player's game.
type Summary struct {
	PlayerName   string
	Attempts     int
	Made         int
	Threes       int
	ThreesMade   int
	MeanDistance float64 // feet
	HomeTeam     string
	VisitorTeam  string
	GameDate     time.Time // zero when unknown
}

// Summarize aggregates records. Player and game details come from the first
// record.
func Summarize(records []Record) Summary {
	s := Summary{Attempts: len(records)}
	if len(records) == 0 {
		return s
	}

	first := records[0]
	s.PlayerName = first.PlayerName
	s.HomeTeam = first.HomeTeam
	s.VisitorTeam = first.VisitorTeam
	if d, err := time.Parse(gameDateLayout, first.GameDate); err == nil {
		s.GameDate = d
	}

	s.Made = lo.CountBy(records, Record.Made)
	threes := lo.Filter(records, func(r Record, _ int) bool { return r.Three() })
	s.Threes = len(threes)
	s.ThreesMade = lo.CountBy(threes, Record.Made)

	distances := lo.Map(records, func(r Record, _ int) float64 { return r.ShotDistance })
	s.MeanDistance = stat.Mean(distances, nil)
	return s
}

// FieldGoalPct returns made/attempts in [0,1], 0 without attempts.
func (s Summary) FieldGoalPct() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Made) / float64(s.Attempts)
}

// Headline is the left caption, e.g. "KLAY THOMPSON\n14 THREE POINTERS".
func (s Summary) Headline() string {
	name := strings.ToUpper(s.PlayerName)
	if s.ThreesMade > 0 {
		return fmt.Sprintf("%s\n%d THREE POINTERS", name, s.ThreesMade)
	}
	return fmt.Sprintf("%s\n%d OF %d FIELD GOALS", name, s.Made, s.Attempts)
}

// Matchup is the right caption, e.g. "GSW @ CHI\n10/29/18".
func (s Summary) Matchup() string {
	if s.VisitorTeam == "" && s.HomeTeam == "" {
		return ""
	}
	line := s.VisitorTeam + " @ " + s.HomeTeam
	if s.GameDate.IsZero() {
		return line
	}
	return line + "\n" + s.GameDate.Format("01/02/06")
}
