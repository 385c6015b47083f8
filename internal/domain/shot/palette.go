package shot

import (
	"fmt"
	"strings"
)

// Palette maps shot outcome to a display colour.
type Palette struct {
	Primary   string // made
	Secondary string // missed
}

// Color returns the colour for a made flag: secondary for 0, primary
// otherwise.
func (p Palette) Color(flag int) string {
	if flag == 0 {
		return p.Secondary
	}
	return p.Primary
}

// Team colours, https://teamcolorcodes.com/nba-team-color-codes/
var teamPalettes = map[string]Palette{
	"GS":  {Primary: "#006BB6", Secondary: "#FDB927"},
	"LAL": {Primary: "#552583", Secondary: "#FDB927"},
	"ATL": {Primary: "#E03A3E", Secondary: "#26282A"},
}

// PaletteFor returns the palette for a team abbreviation.
func PaletteFor(team string) (Palette, error) {
	p, ok := teamPalettes[strings.ToUpper(strings.TrimSpace(team))]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	return p, nil
}
