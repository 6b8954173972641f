package dashboard

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/joeydtaylor/electrode/pkg/internal/codec"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Title      string
	Channels   int
	LastSample int
	ChannelEnd int
	SampleEnd  int
	Formulas   []types.Formula
	Methods    []types.LinkageMethod
}

// Meta describes the loaded artifacts and control defaults.
type Meta struct {
	Channels   int                   `json:"channels"`
	Samples    int                   `json:"samples"`
	SampleRate int                   `json:"sample_rate"`
	Formulas   []types.Formula       `json:"formulas"`
	Methods    []types.LinkageMethod `json:"methods"`
	Defaults   Defaults              `json:"defaults"`
}

// Defaults are the initial control values.
type Defaults struct {
	View     types.ViewMode      `json:"view"`
	Channels view.Range          `json:"channels"`
	Samples  view.Range          `json:"samples"`
	Method   types.LinkageMethod `json:"method"`
	Formula  types.Formula       `json:"formula"`
	Overlay  types.OverlayMode   `json:"overlay"`
}

// ChannelInfo is one row of /api/channels.
type ChannelInfo struct {
	Channel int                   `json:"channel"` // 1-based
	Name    string                `json:"name,omitempty"`
	Length  int                   `json:"length"`
	Profile *types.ChannelProfile `json:"profile,omitempty"`
}

// writeJSON encodes v and, for large bodies, applies the best coding r accepts.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	b, err := codec.MarshalJSON(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "application/json")
	if r != nil {
		h.Add("Vary", "Accept-Encoding")
		if len(b) >= minCompressSize {
			if enc := negotiateEncoding(r.Header.Get("Accept-Encoding")); enc != "" {
				if cb, err := compressBody(b, enc); err == nil {
					b = cb
					h.Set("Content-Encoding", enc)
				}
			}
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, nil, status, map[string]string{"error": msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	last := max(s.view.Samples()-1, 0)
	err := indexTemplate.Execute(w, pageData{
		Title:      s.title,
		Channels:   s.view.Channels(),
		LastSample: last,
		ChannelEnd: min(defaultChannelSpan, s.view.Channels()),
		SampleEnd:  min(defaultSampleSpan, last),
		Formulas:   s.view.Formulas(),
		Methods:    s.view.Methods(),
	})
	if err != nil {
		s.NotifyLoggers(types.ErrorLevel, "index render failed",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "index",
			logschema.FieldError, err,
		)
	}
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	def := parseRequest(nil, s.view)
	writeJSON(w, r, http.StatusOK, Meta{
		Channels:   s.view.Channels(),
		Samples:    s.view.Samples(),
		SampleRate: s.view.SampleRate(),
		Formulas:   s.view.Formulas(),
		Methods:    s.view.Methods(),
		Defaults: Defaults{
			View:     types.ViewSignal,
			Channels: def.Channels,
			Samples:  def.Samples,
			Method:   def.Method,
			Formula:  def.Formula,
			Overlay:  def.Overlay,
		},
	})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	req := parseRequest(r.URL.Query(), s.view)
	writeJSON(w, r, http.StatusOK, view.Render(s.view, req))
}

func (s *Server) handleClamp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var count int
	switch q.Get("axis") {
	case "channel", "channels":
		count = s.view.Channels()
	case "sample", "samples":
		count = s.view.Samples()
	default:
		writeJSONError(w, http.StatusBadRequest, "axis must be channel or sample")
		return
	}
	writeJSON(w, r, http.StatusOK, view.ClampRange(intParam(q, "start", 0), intParam(q, "end", 0), count))
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	names := s.view.Names()
	lengths := s.view.Lengths()
	profiles := s.view.Profiles()

	out := make([]ChannelInfo, s.view.Channels())
	for i := range out {
		out[i] = ChannelInfo{Channel: i + 1, Length: s.view.Samples()}
		if i < len(names) {
			out[i].Name = names[i]
		}
		if i < len(lengths) {
			out[i].Length = lengths[i]
		}
		if i < len(profiles) {
			p := profiles[i]
			out[i].Profile = &p
		}
	}
	writeJSON(w, r, http.StatusOK, out)
}
