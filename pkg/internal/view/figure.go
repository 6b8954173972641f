package view

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Meta   Meta    `json:"-"`
}

// Meta records render decisions the figure itself does not carry.
type Meta struct {
	Placeholder bool  `json:"placeholder"`
	Downsampled bool  `json:"downsampled"`
	ShowLabels  bool  `json:"show_labels"`
	Channels    []int `json:"channels"` // 0-based, in display order
}

// Trace is a scatter or heatmap trace.
type Trace struct {
	Type          string      `json:"type"`
	Mode          string      `json:"mode,omitempty"`
	Name          string      `json:"name,omitempty"`
	X             []int       `json:"x,omitempty"`
	Y             interface{} `json:"y,omitempty"`
	Z             [][]float64 `json:"z,omitempty"`
	XAxis         string      `json:"xaxis,omitempty"`
	YAxis         string      `json:"yaxis,omitempty"`
	ColorScale    string      `json:"colorscale,omitempty"`
	ZMin          *float64    `json:"zmin,omitempty"`
	ZMax          *float64    `json:"zmax,omitempty"`
	ZMid          *float64    `json:"zmid,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Grid lays subplots out in rows.
type Grid struct {
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Pattern string `json:"pattern"`
}

// Axis is one x or y axis.
type Axis struct {
	Title          *Title   `json:"title,omitempty"`
	ShowTickLabels *bool    `json:"showticklabels,omitempty"`
	TickMode       string   `json:"tickmode,omitempty"`
	TickVals       []int    `json:"tickvals,omitempty"`
	TickText       []string `json:"ticktext,omitempty"`
	AutoRange      string   `json:"autorange,omitempty"`
	Range          []int    `json:"range,omitempty"`
	Matches        string   `json:"matches,omitempty"`
	ZeroLineColor  string   `json:"zerolinecolor,omitempty"`
	ZeroLineWidth  int      `json:"zerolinewidth,omitempty"`
}

// Layout is the figure layout. Axes are keyed by Plotly name ("xaxis", "yaxis2", ...)
// and flattened into the layout object when encoded.
type Layout struct {
	Title       Title           `json:"title"`
	Height      int             `json:"height,omitempty"`
	Width       int             `json:"width,omitempty"`
	AutoSize    *bool           `json:"autosize,omitempty"`
	ShowLegend  *bool           `json:"showlegend,omitempty"`
	HoverMode   string          `json:"hovermode,omitempty"`
	PlotBGColor string          `json:"plot_bgcolor,omitempty"`
	Margin      *Margin         `json:"margin,omitempty"`
	Grid        *Grid           `json:"grid,omitempty"`
	Axes        map[string]Axis `json:"-"`
}

// MarshalJSON encodes the layout with its axes as top-level keys.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	b, err := json.Marshal(plain(l))
	if err != nil || len(l.Axes) == 0 {
		return b, err
	}
	fields := make(map[string]jsoniter.RawMessage, 10+len(l.Axes))
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	for name, axis := range l.Axes {
		raw, err := json.Marshal(axis)
		if err != nil {
			return nil, err
		}
		fields[name] = raw
	}
	return json.Marshal(fields)
}

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
