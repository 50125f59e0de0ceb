package roundexport

import (
	"fmt"
	"io"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// WriteScoreChart renders a PNG bar chart with one bar per submitted score.
func WriteScoreChart(w io.Writer, round *roundtypes.Round) error {
	if len(round.Scores) == 0 {
		return renderNoScores(w)
	}

	bars := make([]chart.Value, len(round.Scores))
	lo, hi := 0.0, 0.0
	for i, sc := range round.Scores {
		v := float64(sc.Score)
		bars[i] = chart.Value{Label: string(sc.MemberID), Value: v}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	graph := chart.BarChart{
		Title:    round.Title,
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo - 1, Max: hi + 1},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render score chart: %w", err)
	}
	return nil
}

// renderNoScores draws a message on an empty canvas. go-chart refuses to render
// without a visible series, so the placeholder carries a transparent line.
func renderNoScores(w io.Writer) error {
	const msg = "No scores submitted"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		XAxis:  chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis:  chart.YAxis{Style: chart.Style{Hidden: true}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					StrokeWidth: 1,
				},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
				r.SetFont(defaults.GetFont())
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, cb.Left+(cb.Width()-tb.Width())/2, cb.Top+(cb.Height()+tb.Height())/2)
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return nil
}
