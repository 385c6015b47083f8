// Package shot holds shot records from the stats service and turns them into
// the coordinate and colour sequences the animation consumes.
package shot

// ShotType values reported by the stats service.
const (
	TwoPointer   = "2PT Field Goal"
	ThreePointer = "3PT Field Goal"
)

// Record is one attempted shot as reported by shotchartdetail.
// LocX and LocY are in tenths of a foot with the hoop at the origin.
type Record struct {
	GameID           string
	GameEventID      int
	PlayerID         int
	PlayerName       string
	TeamName         string
	Period           int
	MinutesRemaining int
	SecondsRemaining int
	EventType        string
	ActionType       string
	ShotType         string
	ShotDistance     float64
	LocX             float64
	LocY             float64
	MadeFlag         int
	GameDate         string // YYYYMMDD
	HomeTeam         string
	VisitorTeam      string
}

// Made reports whether the shot went in. Any non-zero flag counts as made.
func (r Record) Made() bool { return r.MadeFlag != 0 }

// Three reports whether the attempt was from beyond the arc.
func (r Record) Three() bool { return r.ShotType == ThreePointer }
