package dashboard_test

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/joeydtaylor/electrode/pkg/internal/dashboard"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, channels, samples int) *view.Context {
	t.Helper()
	data := make([]float64, channels*samples)
	for i := range data {
		data[i] = float64((i*31)%17) - 8
	}
	b := &store.Bundle{
		Signals:      &types.SignalMatrix{Channels: channels, Samples: samples, SampleRate: 19531, Data: data, Names: make([]string, channels)},
		Correlations: map[types.Formula]*types.CorrelationMatrix{},
		Orders:       map[types.OrderKey]types.ChannelOrder{},
		Profiles:     make([]types.ChannelProfile, channels),
	}
	for i := range b.Signals.Names {
		b.Signals.Names[i] = "ch" + string(rune('a'+i)) + ".wav"
		b.Profiles[i] = types.ChannelProfile{Mean: float64(i)}
	}
	for _, f := range types.Formulas() {
		corr := make([]float64, channels*channels)
		for i := 0; i < channels; i++ {
			corr[i*channels+i] = 1
		}
		b.Correlations[f] = &types.CorrelationMatrix{Formula: f, N: channels, Data: corr}
		b.Orders[types.OrderKey{Formula: f, Method: types.MethodAverage}] = types.IdentityOrder(channels)
	}
	vc, err := view.NewContext(b)
	require.NoError(t, err)
	return vc
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexPage(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 4, 200), dashboard.WithTitle("Test Viewer"))
	rec := get(t, srv.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Test Viewer</title>")
	assert.Contains(t, body, `value="average"`)
	assert.Contains(t, body, `value="kendall"`)
	assert.Contains(t, body, "plotly")

	assert.Equal(t, 4, strings.Count(body, `type="range"`))
	assert.Contains(t, body, `id="s1-slider" type="range" data-pair="s1" min="0" max="199"`)
	assert.Contains(t, body, `id="ch1" type="number" min="1" max="4" step="1" value="4"`)
	assert.NotContains(t, body, `max="200"`)

	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/nope").Code)
}

func TestMeta(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 4, 200))
	rec := get(t, srv.Handler(), "/api/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta dashboard.Meta
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 4, meta.Channels)
	assert.Equal(t, 200, meta.Samples)
	assert.Equal(t, 19531, meta.SampleRate)
	assert.Equal(t, []types.LinkageMethod{types.MethodDefault, types.MethodAverage}, meta.Methods)
	assert.Equal(t, view.Range{Start: 1, End: 4}, meta.Defaults.Channels)
	assert.Equal(t, view.Range{Start: 0, End: 200}, meta.Defaults.Samples)
}

func TestFigureEndpoint(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 4, 200))

	rec := get(t, srv.Handler(), "/api/figure?switch=corr-btn&ch0=4&ch1=1&formula=spearman&method=average")
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "correlation", res["view"])
	assert.EqualValues(t, 0, res["channel_start"])
	assert.EqualValues(t, 4, res["channel_end"])
	figure := res["figure"].(map[string]interface{})
	layout := figure["layout"].(map[string]interface{})
	assert.Equal(t, "Correlation Matrix (spearman)", layout["title"].(map[string]interface{})["text"])

	rec = get(t, srv.Handler(), "/api/figure?view=image&s0=50&s1=50")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "image", res["view"])
	assert.Equal(t, true, res["meta"].(map[string]interface{})["placeholder"])

	res = map[string]interface{}{}
	rec = get(t, srv.Handler(), "/api/figure?view=image&ch0=-1e30&ch1=99999999999999999999&s0=0&s1=Inf")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &res))
	assert.EqualValues(t, 0, res["channel_start"])
	assert.EqualValues(t, 4, res["channel_end"])
	assert.EqualValues(t, 200, res["sample_end"])
	assert.NotEqual(t, true, res["meta"].(map[string]interface{})["placeholder"])
}

func TestClampEndpoint(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 64, 100))

	rec := get(t, srv.Handler(), "/api/clamp?axis=channel&start=5000&end=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var rg view.Range
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rg))
	assert.Equal(t, view.Range{Start: 3, End: 63}, rg)

	rec = get(t, srv.Handler(), "/api/clamp?axis=sample&start=-1&end=1e9")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rg))
	assert.Equal(t, view.Range{Start: 0, End: 99}, rg)

	for _, end := range []string{"99999999999999999999", "1e400", "Inf"} {
		rec = get(t, srv.Handler(), "/api/clamp?axis=channel&start=3&end="+end)
		require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rg))
		assert.Equal(t, view.Range{Start: 3, End: 63}, rg, end)
	}
	rec = get(t, srv.Handler(), "/api/clamp?axis=channel&start=-99999999999999999999&end=NaN")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rg))
	assert.Equal(t, view.Range{Start: 0, End: 0}, rg)

	assert.Equal(t, http.StatusBadRequest, get(t, srv.Handler(), "/api/clamp?axis=time").Code)
}

func TestChannelsEndpoint(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 3, 50))
	rec := get(t, srv.Handler(), "/api/channels")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []dashboard.ChannelInfo
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Channel)
	assert.Equal(t, "chc.wav", rows[2].Name)
	assert.Equal(t, 50, rows[2].Length)
	require.NotNil(t, rows[2].Profile)
	assert.Equal(t, 2.0, rows[2].Profile.Mean)
}

func TestSignalPNG(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 3, 200), dashboard.WithHeader("X-Viewer", "electrode"))
	rec := get(t, srv.Handler(), "/export/signal.png?ch0=1&ch1=2&s0=0&s1=100")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "electrode", rec.Header().Get("X-Viewer"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1320, img.Bounds().Dx())

	rec = get(t, srv.Handler(), "/export/signal.png?s0=10&s1=10")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRejectsNonGet(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 2, 10))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/meta", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 2, 10), dashboard.WithAddress("127.0.0.1:0"), dashboard.WithTimeout(time.Second))
	assert.Equal(t, "127.0.0.1:0", srv.Address())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestFigureIsCompressedWhenAccepted(t *testing.T) {
	srv := dashboard.NewServer(fixture(t, 6, 2000))

	req := httptest.NewRequest(http.MethodGet, "/api/figure?ch0=1&ch1=6&s0=0&s1=2000", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")

	body, err := io.ReadAll(brotli.NewReader(rec.Body))
	require.NoError(t, err)
	var res map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(body, &res))
	assert.Contains(t, res, "figure")

	plain := get(t, srv.Handler(), "/api/figure?ch0=1&ch1=6&s0=0&s1=2000")
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.Greater(t, plain.Body.Len(), len(rec.Body.Bytes()))
}
