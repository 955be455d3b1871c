package statsservice

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// buildWorkbook renders the full scorecard as an XLSX workbook: a summary
// sheet plus one sheet per innings with batting, bowling, and fall of
// wickets.
func buildWorkbook(m *scoringdomain.Match, allInnings []*scoringdomain.Innings, resultText string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}

	setRow(f, summary, 1, "Match", fmt.Sprintf("%s vs %s", m.TeamA.Name, m.TeamB.Name))
	setRow(f, summary, 2, "Format", string(m.Format))
	setRow(f, summary, 3, "Result", resultText)

	row := 5
	for _, inn := range allInnings {
		setRow(f, summary, row,
			fmt.Sprintf("Innings %d", inn.Number),
			fmt.Sprintf("%s %d/%d (%d.%d overs)",
				m.Team(inn.BattingTeam).Name, inn.Runs, inn.Wickets, inn.OversCompleted, inn.BallsInOver),
		)
		row++
	}

	for _, inn := range allInnings {
		if err := writeInningsSheet(f, m, inn); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeInningsSheet(f *excelize.File, m *scoringdomain.Match, inn *scoringdomain.Innings) error {
	sheet := fmt.Sprintf("Innings %d", inn.Number)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	batting := m.Team(inn.BattingTeam)
	bowling := m.Team(inn.BowlingTeam)

	setRow(f, sheet, 1, fmt.Sprintf("%s batting", batting.Name))
	setRow(f, sheet, 2, "Batter", "Runs", "Balls", "4s", "6s", "Dismissal")

	row := 3
	for _, stat := range inn.BattingStats {
		dismissal := "not out"
		if stat.Out {
			dismissal = string(stat.Dismissal)
		}
		setRow(f, sheet, row, playerName(batting, stat.PlayerID), stat.Runs, stat.BallsFaced, stat.Fours, stat.Sixes, dismissal)
		row++
	}

	row++
	setRow(f, sheet, row, "Extras", inn.Extras.Total,
		fmt.Sprintf("(w %d, nb %d, b %d, lb %d)", inn.Extras.Wides, inn.Extras.NoBalls, inn.Extras.Byes, inn.Extras.LegByes))
	row++
	setRow(f, sheet, row, "Total", fmt.Sprintf("%d/%d", inn.Runs, inn.Wickets),
		fmt.Sprintf("%d.%d overs", inn.OversCompleted, inn.BallsInOver))
	row += 2

	setRow(f, sheet, row, fmt.Sprintf("%s bowling", bowling.Name))
	row++
	setRow(f, sheet, row, "Bowler", "Overs", "Maidens", "Runs", "Wickets")
	row++
	for _, stat := range inn.BowlingStats {
		overs := fmt.Sprintf("%d", stat.OversBowled)
		if stat.BallsInOver > 0 {
			overs = fmt.Sprintf("%d.%d", stat.OversBowled, stat.BallsInOver)
		}
		setRow(f, sheet, row, playerName(bowling, stat.PlayerID), overs, stat.Maidens, stat.RunsConceded, stat.Wickets)
		row++
	}

	if len(inn.FallOfWickets) > 0 {
		row++
		setRow(f, sheet, row, "Fall of wickets")
		row++
		for _, fow := range inn.FallOfWickets {
			setRow(f, sheet, row,
				fmt.Sprintf("%d-%d", fow.Wicket, fow.Score),
				playerName(batting, fow.PlayerID),
				fmt.Sprintf("%d.%d", fow.Over, fow.Ball),
			)
			row++
		}
	}

	return nil
}

// setRow writes values across one row starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func playerName(team sharedtypes.Team, id sharedtypes.PlayerID) string {
	for _, p := range team.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return string(id)
}
