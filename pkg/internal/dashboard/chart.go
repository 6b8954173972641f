package dashboard

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
	"github.com/joeydtaylor/electrode/pkg/logschema"
	chart "github.com/wcharczuk/go-chart/v2"
)

// SignalChart renders the overlaid signal view of req as a PNG.
func SignalChart(vc *view.Context, req view.Request) ([]byte, error) {
	req.View, req.Switch, req.Overlay = types.ViewSignal, "", types.OverlayOverlay
	res := view.Render(vc, req)
	if res.Meta.Placeholder {
		return nil, fmt.Errorf("dashboard: %s", view.PlaceholderTitle)
	}

	series := make([]chart.Series, 0, len(res.Figure.Data))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, tr := range res.Figure.Data {
		ys, _ := tr.Y.([]float64)
		xs := make([]float64, len(tr.X))
		for i, x := range tr.X {
			xs[i] = float64(x)
		}
		if len(xs) == 1 {
			// go-chart needs a non-zero x range.
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		for _, y := range ys {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
		series = append(series, chart.ContinuousSeries{Name: tr.Name, XValues: xs, YValues: ys})
	}

	ch := chart.Chart{
		Title:      res.Figure.Layout.Title.Text,
		Width:      res.Figure.Layout.Width,
		Height:     res.Figure.Layout.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "samples"},
		YAxis:      chart.YAxis{Name: "voltage"},
		Series:     series,
	}
	if lo == hi {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	if len(series) <= view.MaxLabels {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) handleSignalPNG(w http.ResponseWriter, r *http.Request) {
	png, err := SignalChart(s.view, parseRequest(r.URL.Query(), s.view))
	if err != nil {
		s.NotifyLoggers(types.WarnLevel, "signal export failed",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "export_png",
			logschema.FieldError, err,
		)
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="signal.png"`)
	_, _ = w.Write(png)
}
