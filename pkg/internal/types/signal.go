package types

import "context"

// SignalMatrix holds every channel's waveform stacked row-major by channel and
// right-padded with zeros to a common sample count. It is created once by the
// loader and treated as read-only by every downstream stage.
type SignalMatrix struct {
	Channels   int       // Number of rows (electrodes).
	Samples    int       // Padded samples per row.
	SampleRate int       // Shared sample rate in Hz.
	Data       []float64 // Channels*Samples values, row-major.
	Lengths    []int     // Native (unpadded) length of each channel.
	Names      []string  // Source file name of each channel, may be empty when restored from artifacts.
}

// Row returns the padded samples of channel ch. The slice aliases the matrix and must not be modified.
func (m *SignalMatrix) Row(ch int) []float64 {
	return m.Data[ch*m.Samples : (ch+1)*m.Samples]
}

// At returns sample s of channel ch.
func (m *SignalMatrix) At(ch, s int) float64 {
	return m.Data[ch*m.Samples+s]
}

// MinLength returns the shortest native channel length, or Samples when lengths are unknown.
func (m *SignalMatrix) MinLength() int {
	if len(m.Lengths) == 0 {
		return m.Samples
	}
	min := m.Lengths[0]
	for _, l := range m.Lengths[1:] {
		if l < min {
			min = l
		}
	}
	return min
}

// Loader turns a directory of per-channel waveform files into a SignalMatrix.
type Loader interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	Load(ctx context.Context) (*SignalMatrix, error)
}

// ChannelProfile summarises one channel over its native samples.
type ChannelProfile struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	RMS        float64 `json:"rms"`
	DominantHz float64 `json:"dominant_hz"`
}

// ProfileFields is the column count of a ChannelProfile when stored as a matrix row.
const ProfileFields = 6

// Values returns the profile in storage column order.
func (p ChannelProfile) Values() []float64 {
	return []float64{p.Mean, p.StdDev, p.Min, p.Max, p.RMS, p.DominantHz}
}

// ProfileFromValues is the inverse of Values.
func ProfileFromValues(v []float64) ChannelProfile {
	return ChannelProfile{Mean: v[0], StdDev: v[1], Min: v[2], Max: v[3], RMS: v[4], DominantHz: v[5]}
}
