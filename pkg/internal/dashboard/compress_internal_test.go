package dashboard

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiateEncoding(t *testing.T) {
	cases := []struct {
		accept string
		want   string
	}{
		{"", ""},
		{"identity", ""},
		{"gzip", "gzip"},
		{"gzip, deflate, br, zstd", "br"},
		{"gzip;q=1.0, br;q=0.5", "gzip"},
		{"br;q=0, zstd", "zstd"},
		{"*", "br"},
		{"*;q=0.2, gzip;q=0.8", "gzip"},
		{"br;q=0, zstd;q=0, gzip;q=0", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, negotiateEncoding(tc.accept), "Accept-Encoding %q", tc.accept)
	}
}

func TestCompressBodyRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte(`{"x":[1,2,3],"y":[0.5,0.25]}`), 200)

	readers := map[string]func(io.Reader) (io.Reader, error){
		"gzip": func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
		"zstd": func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) },
		"br":   func(r io.Reader) (io.Reader, error) { return brotli.NewReader(r), nil },
	}
	for enc, open := range readers {
		packed, err := compressBody(data, enc)
		require.NoError(t, err, enc)
		assert.Less(t, len(packed), len(data), enc)

		r, err := open(bytes.NewReader(packed))
		require.NoError(t, err, enc)
		got, err := io.ReadAll(r)
		require.NoError(t, err, enc)
		assert.Equal(t, data, got, enc)
	}

	same, err := compressBody(data, "")
	require.NoError(t, err)
	assert.Equal(t, data, same)
}
