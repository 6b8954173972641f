package dashboard

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// minCompressSize is the smallest JSON body that gets a Content-Encoding.
const minCompressSize = 1024

// Server-side preference when the client accepts several encodings.
var encodingPreference = []string{"br", "zstd", "gzip"}

// negotiateEncoding picks a content coding from an Accept-Encoding header.
// Codings with q=0 are refused; "*" accepts any coding not listed explicitly.
func negotiateEncoding(accept string) string {
	if accept == "" {
		return ""
	}
	weights := make(map[string]float64)
	for _, part := range strings.Split(accept, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		q := 1.0
		for _, p := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if ok && strings.EqualFold(k, "q") {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					q = f
				}
			}
		}
		weights[name] = q
	}

	best, bestQ := "", 0.0
	for _, enc := range encodingPreference {
		q, ok := weights[enc]
		if !ok {
			q, ok = weights["*"]
		}
		if ok && q > bestQ {
			best, bestQ = enc, q
		}
	}
	return best
}

func compressBody(data []byte, encoding string) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch encoding {
	case "gzip":
		w = gzip.NewWriter(&b)
	case "zstd":
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case "br":
		w = brotli.NewWriterLevel(&b, brotli.DefaultCompression)
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
