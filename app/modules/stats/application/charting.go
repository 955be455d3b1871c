package statsservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
)

// RunRatePoint is one cumulative score reading: the over count on the x
// axis, total runs on the y axis.
type RunRatePoint struct {
	Over float64
	Runs float64
}

// InningsProgress is one innings' worth of chart data.
type InningsProgress struct {
	Label  string
	Points []RunRatePoint
}

// inningsProgress derives the cumulative score line of one innings from its
// ledger. Reversed events are skipped; the reading is taken at each over
// boundary, plus the final (possibly partial) over.
func inningsProgress(m *scoringdomain.Match, inn *scoringdomain.Innings, events []scoringdomain.ScoreEvent) InningsProgress {
	points := []RunRatePoint{{Over: 0, Runs: 0}}

	for _, ev := range events {
		if ev.Reversed {
			continue
		}
		if ev.Flags.OverCompleted {
			points = append(points, RunRatePoint{
				Over: float64(ev.Over + 1),
				Runs: float64(ev.TotalRuns),
			})
		}
	}

	if inn.BallsInOver > 0 {
		points = append(points, RunRatePoint{
			Over: float64(inn.OversCompleted) + float64(inn.BallsInOver)/6,
			Runs: float64(inn.Runs),
		})
	}

	return InningsProgress{
		Label:  fmt.Sprintf("%s (innings %d)", m.Team(inn.BattingTeam).Name, inn.Number),
		Points: points,
	}
}

// GenerateRunRateChart produces a PNG line chart of the cumulative score of
// every innings, overs on the x axis.
func GenerateRunRateChart(progress []InningsProgress) ([]byte, error) {
	var series []chart.Series
	for _, inn := range progress {
		if len(inn.Points) < 2 {
			continue
		}
		xValues := make([]float64, len(inn.Points))
		yValues := make([]float64, len(inn.Points))
		for i, p := range inn.Points {
			xValues[i] = p.Over
			yValues[i] = p.Runs
		}
		series = append(series, chart.ContinuousSeries{
			Name:    inn.Label,
			XValues: xValues,
			YValues: yValues,
		})
	}

	if len(series) == 0 {
		return renderNoDataPlaceholder()
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Overs",
		},
		YAxis: chart.YAxis{
			Name: "Runs",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No deliveries recorded"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
