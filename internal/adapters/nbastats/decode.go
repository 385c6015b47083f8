package nbastats

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/okian/shotchart/internal/domain/shot"
)

const shotChartResultSet = "Shot_Chart_Detail"

// Columns that must be present for a usable shot chart.
var requiredColumns = []string{"LOC_X", "LOC_Y", "SHOT_MADE_FLAG"}

// Decode parses a shotchartdetail response body. Rows are returned in the
// order the API lists them, which is game order.
func Decode(body []byte) ([]shot.Record, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	root := gjson.ParseBytes(body)

	var set gjson.Result
	root.Get("resultSets").ForEach(func(_, rs gjson.Result) bool {
		if rs.Get("name").String() == shotChartResultSet {
			set = rs
			return false
		}
		return true
	})
	if !set.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNoResultSet, shotChartResultSet)
	}

	index := map[string]int{}
	for i, h := range set.Get("headers").Array() {
		index[h.String()] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rows := set.Get("rowSet").Array()
	records := make([]shot.Record, 0, len(rows))
	for _, row := range rows {
		cells := row.Array()
		col := func(name string) gjson.Result {
			i, ok := index[name]
			if !ok || i >= len(cells) {
				return gjson.Result{}
			}
			return cells[i]
		}
		records = append(records, shot.Record{
			GameID:           col("GAME_ID").String(),
			GameEventID:      int(col("GAME_EVENT_ID").Int()),
			PlayerID:         int(col("PLAYER_ID").Int()),
			PlayerName:       col("PLAYER_NAME").String(),
			TeamName:         col("TEAM_NAME").String(),
			Period:           int(col("PERIOD").Int()),
			MinutesRemaining: int(col("MINUTES_REMAINING").Int()),
			SecondsRemaining: int(col("SECONDS_REMAINING").Int()),
			EventType:        col("EVENT_TYPE").String(),
			ActionType:       col("ACTION_TYPE").String(),
			ShotType:         col("SHOT_TYPE").String(),
			ShotDistance:     col("SHOT_DISTANCE").Float(),
			LocX:             col("LOC_X").Float(),
			LocY:             col("LOC_Y").Float(),
			MadeFlag:         int(col("SHOT_MADE_FLAG").Int()),
			GameDate:         col("GAME_DATE").String(),
			HomeTeam:         col("HTM").String(),
			VisitorTeam:      col("VTM").String(),
		})
	}
	return records, nil
}
