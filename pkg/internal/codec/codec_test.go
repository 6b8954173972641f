package codec_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummyType struct {
	Value string `json:"value"`
}

func TestJSONEncodingDecoding(t *testing.T) {
	var encoded bytes.Buffer
	require.NoError(t, codec.NewJSONEncoder[dummyType]().Encode(&encoded, dummyType{Value: "Test"}))

	decoded, err := codec.NewJSONDecoder[dummyType]().Decode(&encoded)
	require.NoError(t, err)
	assert.Equal(t, dummyType{Value: "Test"}, decoded)
}

func TestJSONSliceEncodingDecoding(t *testing.T) {
	in := []dummyType{{Value: "Test1"}, {Value: "Test2"}}
	var encoded bytes.Buffer
	require.NoError(t, codec.NewJSONEncoder[dummyType]().EncodeSlice(&encoded, in))

	out, err := codec.NewJSONDecoder[dummyType]().DecodeSlice(&encoded)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// npyFixture builds a v1.0 .npy stream the way numpy.save lays it out.
func npyFixture(t *testing.T, descr, shape string, data interface{}) []byte {
	t.Helper()
	header := "{'descr': '" + descr + "', 'fortran_order': False, 'shape': " + shape + ", }"
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(header))))
	buf.WriteString(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, data))
	return buf.Bytes()
}

func TestNPYMatrixLayout(t *testing.T) {
	var buf bytes.Buffer
	m := codec.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, codec.NewNPYEncoder[float64]().Encode(&buf, m))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x93NUMPY")))

	out, err := codec.NewNPYDecoder[float64]().Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Shape)
	assert.Equal(t, m.Data, out.Data)
}

func TestNPYReadsInt32Orders(t *testing.T) {
	raw := npyFixture(t, "<i4", "(3,)", []int32{2, 0, 1})

	out, err := codec.NewNPYDecoder[int64]().Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, out.Shape)
	assert.Equal(t, []int64{2, 0, 1}, out.Data)
}

func TestNPYConvertsDtypes(t *testing.T) {
	raw := npyFixture(t, "<f4", "(2, 2)", []float32{1, 0.5, 0.5, 1})
	m, err := codec.NewNPYDecoder[float64]().Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0.5, 1}, m.Data)
	assert.Equal(t, 2, m.Cols())

	raw = npyFixture(t, "<f8", "(2,)", []float64{4, 7})
	v, err := codec.NewNPYDecoder[int64]().Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 7}, v.Data)

	raw = npyFixture(t, "|u1", "(3,)", []uint8{9, 8, 7})
	v, err = codec.NewNPYDecoder[int64]().Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 8, 7}, v.Data)
}

func TestNPYRejectsFractionalInts(t *testing.T) {
	raw := npyFixture(t, "<f8", "(2,)", []float64{1, 2.5})
	_, err := codec.NewNPYDecoder[int64]().Decode(bytes.NewReader(raw))
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestNPYFloatMatrixRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := codec.NewMatrix(2, 2, []float64{1, -0.5, -0.5, 1})
	require.NoError(t, codec.NewNPYEncoder[float64]().Encode(&buf, in))

	out, err := codec.NewNPYDecoder[float64]().Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, out.Shape)
	assert.Equal(t, in.Data, out.Data)
	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, 2, out.Cols())
}

func TestNPYIntVectorRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.NewNPYEncoder[int64]().Encode(&buf, codec.NewVector([]int64{3, 0, 2, 1})))

	out, err := codec.NewNPYDecoder[int64]().Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0, 2, 1}, out.Data)
	assert.Equal(t, 1, out.Cols())
}

func TestNPYRejectsMismatchedShape(t *testing.T) {
	var buf bytes.Buffer
	err := codec.NewNPYEncoder[float64]().Encode(&buf, codec.NewMatrix(2, 2, []float64{1}))
	assert.True(t, errors.Is(err, codec.ErrFormat))
}

func TestNPYRejectsUnsupportedDtype(t *testing.T) {
	raw := npyFixture(t, "<c16", "(1,)", []float64{1, 0})
	_, err := codec.NewNPYDecoder[float64]().Decode(bytes.NewReader(raw))
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestNPYRejectsIntMatrix(t *testing.T) {
	var buf bytes.Buffer
	err := codec.NewNPYEncoder[int64]().Encode(&buf, codec.NewMatrix(1, 2, []int64{1, 2}))
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestNPYRejectsGarbage(t *testing.T) {
	_, err := codec.NewNPYDecoder[float64]().Decode(bytes.NewReader([]byte("not a numpy file at all")))
	assert.ErrorIs(t, err, codec.ErrFormat)
}

func TestNPYRejectsTruncatedData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.NewNPYEncoder[float64]().Encode(&buf, codec.NewVector([]float64{1, 2, 3})))
	truncated := buf.Bytes()[:buf.Len()-4]

	_, err := codec.NewNPYDecoder[float64]().Decode(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, codec.ErrFormat)
}
