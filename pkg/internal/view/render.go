package view

import (
	"fmt"
	"strconv"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

const (
	// MaxColumns is the widest image slice drawn at full resolution.
	MaxColumns = 50000
	// MaxLabels is the largest channel count that still shows tick labels.
	MaxLabels = 50
	// PlaceholderTitle is shown instead of an empty chart.
	PlaceholderTitle = "Invalid selection: No data to display"

	signalRowHeight = 150
	plotBackground  = "#daeaf5"
	zeroLineColor   = "rgb(119, 136, 153)"
)

// Range is an inclusive pair of bounds as the controls report them.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ClampRange commits a popup entry: both bounds are clamped into [0, count-1] and sorted.
func ClampRange(start, end, count int) Range {
	hi := count - 1
	if hi < 0 {
		hi = 0
	}
	lo, up := utils.SortedPair(utils.ClampInt(start, 0, hi), utils.ClampInt(end, 0, hi))
	return Range{Start: lo, End: up}
}

// Request is one render call. Channels are 1-based as shown in the controls;
// samples are 0-based with an exclusive end.
type Request struct {
	View     types.ViewMode // last view shown in this session
	Switch   types.ViewMode // set when the user pressed a view button
	Channels Range
	Samples  Range
	Method   types.LinkageMethod
	Formula  types.Formula
	Overlay  types.OverlayMode
}

// Result is the rendered figure plus the normalised state the controls should echo.
type Result struct {
	Figure       Figure         `json:"figure"`
	Meta         Meta           `json:"meta"`
	View         types.ViewMode `json:"view"`
	ChannelStart int            `json:"channel_start"`
	ChannelEnd   int            `json:"channel_end"`
	SampleStart  int            `json:"sample_start"`
	SampleEnd    int            `json:"sample_end"`
}

// ActiveView resolves which view a request renders.
func (r Request) ActiveView() types.ViewMode {
	switch {
	case r.Switch != "":
		return r.Switch
	case r.View != "":
		return r.View
	}
	return types.ViewSignal
}

// Render draws the requested view from c.
func Render(c *Context, req Request) Result {
	view := req.ActiveView()
	formula := req.Formula
	if _, ok := c.correlations[formula]; !ok {
		formula = types.FormulaPearson
	}

	chLo, chHi := utils.SortedPair(req.Channels.Start, req.Channels.End)
	smLo, smHi := utils.SortedPair(req.Samples.Start, req.Samples.End)
	chLo = utils.ClampInt(chLo, 1, c.Channels()) - 1
	chHi = utils.ClampInt(chHi, 0, c.Channels())
	smLo = utils.ClampInt(smLo, 0, c.Samples()-1)
	smHi = utils.ClampInt(smHi, 0, c.Samples())

	res := Result{
		View:         view,
		ChannelStart: chLo,
		ChannelEnd:   chHi,
		SampleStart:  smLo,
		SampleEnd:    smHi,
	}
	if chHi <= chLo || smHi <= smLo {
		res.Figure = placeholder()
		res.Meta = res.Figure.Meta
		return res
	}

	shown := []int(c.Order(req.Method, formula)[chLo:chHi])
	switch view {
	case types.ViewImage:
		res.Figure = c.image(shown, chLo, smLo, smHi)
	case types.ViewCorrelation:
		res.Figure = c.correlation(shown, chLo, formula)
	default:
		if req.Overlay == types.OverlayOverlay {
			res.Figure = c.overlay(shown, smLo, smHi)
		} else {
			res.Figure = c.separate(shown, smLo, smHi)
		}
	}
	res.Figure.Meta.Channels = shown
	res.Meta = res.Figure.Meta
	return res
}

func placeholder() Figure {
	return Figure{
		Data:   []Trace{},
		Layout: Layout{Title: Title{Text: PlaceholderTitle}},
		Meta:   Meta{Placeholder: true},
	}
}

func span(lo, hi, step int) []int {
	out := make([]int, 0, (hi-lo+step-1)/step)
	for i := lo; i < hi; i += step {
		out = append(out, i)
	}
	return out
}

func channelLabels(channels []int) []string {
	out := make([]string, len(channels))
	for i, ch := range channels {
		out[i] = strconv.Itoa(ch + 1)
	}
	return out
}

func traceName(ch int) string { return fmt.Sprintf("Ch%d", ch+1) }

func (c *Context) image(shown []int, chLo, smLo, smHi int) Figure {
	step := 1
	if smHi-smLo > MaxColumns {
		step = 2
	}
	cols := span(smLo, smHi, step)
	z := make([][]float64, len(shown))
	for i, ch := range shown {
		row := c.signals.Row(ch)
		z[i] = make([]float64, len(cols))
		for j, s := range cols {
			z[i][j] = row[s]
		}
	}

	rows := span(chLo+1, chLo+1+len(shown), 1)
	labels := len(shown) <= MaxLabels
	title := "Image View"
	if step > 1 {
		title += " (downsampled)"
	}
	return Figure{
		Data: []Trace{{
			Type:          "heatmap",
			X:             cols,
			Y:             rows,
			Z:             z,
			ColorScale:    "RdYlGn",
			ZMid:          floatPtr(0),
			HoverTemplate: "Channel: %{y}<br>Sample: %{x}<br>Voltage: %{z}<extra></extra>",
		}},
		Layout: Layout{
			Title:    Title{Text: title},
			Height:   750,
			Width:    1320,
			AutoSize: boolPtr(false),
			Margin:   &Margin{L: 20, R: 20, T: 40, B: 20},
			Axes: map[string]Axis{
				"yaxis": {ShowTickLabels: boolPtr(labels), TickMode: "array", TickVals: rows, TickText: channelLabels(shown)},
			},
		},
		Meta: Meta{Downsampled: step > 1, ShowLabels: labels},
	}
}

func (c *Context) correlation(shown []int, chLo int, formula types.Formula) Figure {
	m, ok := c.correlations[formula]
	if !ok {
		return placeholder()
	}
	z := make([][]float64, len(shown))
	for i, a := range shown {
		z[i] = make([]float64, len(shown))
		for j, b := range shown {
			z[i][j] = m.At(a, b)
		}
	}

	ticks := span(chLo+1, chLo+1+len(shown), 1)
	labels := len(shown) <= MaxLabels
	text := channelLabels(shown)
	return Figure{
		Data: []Trace{{
			Type:          "heatmap",
			X:             ticks,
			Y:             ticks,
			Z:             z,
			ColorScale:    "RdYlBu",
			ZMin:          floatPtr(-1),
			ZMax:          floatPtr(1),
			ZMid:          floatPtr(0),
			HoverTemplate: "Channel A: %{y}<br>Channel B: %{x}<br>Correlation: %{z}<extra></extra>",
		}},
		Layout: Layout{
			Title:  Title{Text: fmt.Sprintf("Correlation Matrix (%s)", formula)},
			Height: 800,
			Width:  800,
			Axes: map[string]Axis{
				"xaxis": {ShowTickLabels: boolPtr(labels), TickMode: "array", TickVals: ticks, TickText: text},
				"yaxis": {ShowTickLabels: boolPtr(labels), TickMode: "array", TickVals: ticks, TickText: text, AutoRange: "reversed"},
			},
		},
		Meta: Meta{ShowLabels: labels},
	}
}

func (c *Context) samples(ch, smLo, smHi int) []float64 {
	out := make([]float64, smHi-smLo)
	copy(out, c.signals.Row(ch)[smLo:smHi])
	return out
}

func (c *Context) separate(shown []int, smLo, smHi int) Figure {
	x := span(smLo, smHi, 1)
	f := Figure{
		Data: make([]Trace, 0, len(shown)),
		Layout: Layout{
			Title:       Title{Text: "Signal View (separate)"},
			Height:      len(shown) * signalRowHeight,
			ShowLegend:  boolPtr(false),
			HoverMode:   "x unified",
			PlotBGColor: plotBackground,
			Margin:      &Margin{L: 40, R: 20, T: 40, B: 20},
			Grid:        &Grid{Rows: len(shown), Columns: 1, Pattern: "independent"},
			Axes:        make(map[string]Axis, 2*len(shown)),
		},
		Meta: Meta{ShowLabels: len(shown) <= MaxLabels},
	}
	for i, ch := range shown {
		suffix := ""
		if i > 0 {
			suffix = strconv.Itoa(i + 1)
		}
		f.Data = append(f.Data, Trace{
			Type:  "scatter",
			Mode:  "lines",
			Name:  traceName(ch),
			X:     x,
			Y:     c.samples(ch, smLo, smHi),
			XAxis: "x" + suffix,
			YAxis: "y" + suffix,
		})
		xa := Axis{Range: []int{smLo, smHi}}
		if i > 0 {
			xa.Matches = "x"
		}
		f.Layout.Axes["xaxis"+suffix] = xa
		f.Layout.Axes["yaxis"+suffix] = Axis{
			Title:         &Title{Text: traceName(ch)},
			ZeroLineColor: zeroLineColor,
			ZeroLineWidth: 1,
		}
	}
	return f
}

func (c *Context) overlay(shown []int, smLo, smHi int) Figure {
	x := span(smLo, smHi, 1)
	f := Figure{
		Data: make([]Trace, 0, len(shown)),
		Layout: Layout{
			Title:       Title{Text: "Signal View (overlay)"},
			Height:      750,
			Width:       1320,
			ShowLegend:  boolPtr(true),
			HoverMode:   "x unified",
			PlotBGColor: plotBackground,
			Axes: map[string]Axis{
				"xaxis": {Title: &Title{Text: "samples"}},
				"yaxis": {Title: &Title{Text: "voltage"}, ZeroLineColor: zeroLineColor, ZeroLineWidth: 1},
			},
		},
		Meta: Meta{ShowLabels: len(shown) <= MaxLabels},
	}
	for _, ch := range shown {
		f.Data = append(f.Data, Trace{
			Type: "scatter",
			Mode: "lines",
			Name: traceName(ch),
			X:    x,
			Y:    c.samples(ch, smLo, smHi),
		})
	}
	return f
}
