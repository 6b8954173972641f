package dashboard

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
)

const (
	defaultChannelSpan = 10
	defaultSampleSpan  = 1000
)

func intParam(q url.Values, key string, fallback int) int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	// Decimals truncate; values beyond the int range saturate.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fallback
	}
	switch {
	case math.IsNaN(f):
		return fallback
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// parseRequest maps query parameters onto a render request. Unknown or
// malformed values fall back to the control defaults.
func parseRequest(q url.Values, vc *view.Context) view.Request {
	req := view.Request{
		Channels: view.Range{
			Start: intParam(q, "ch0", 1),
			End:   intParam(q, "ch1", min(defaultChannelSpan, vc.Channels())),
		},
		Samples: view.Range{
			Start: intParam(q, "s0", 0),
			End:   intParam(q, "s1", min(defaultSampleSpan, vc.Samples())),
		},
		Method:  types.MethodDefault,
		Formula: types.FormulaPearson,
		Overlay: types.OverlaySeparate,
	}
	if v, err := types.ParseViewMode(q.Get("view")); err == nil {
		req.View = v
	}
	if v, err := types.ParseViewMode(q.Get("switch")); err == nil {
		req.Switch = v
	}
	if m, err := types.ParseMethod(q.Get("method")); err == nil {
		req.Method = m
	}
	if f, err := types.ParseFormula(q.Get("formula")); err == nil {
		req.Formula = f
	}
	if o, err := types.ParseOverlayMode(q.Get("overlay")); err == nil {
		req.Overlay = o
	}
	return req
}
