package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/require"

	"github.com/satindergrewal/dial/internal/logging"
	"github.com/satindergrewal/dial/internal/station"
	"github.com/satindergrewal/dial/internal/tuner"
)

// --- Constants ---

func TestConstants(t *testing.T) {
	// 48kHz * 20ms = 960 samples per channel
	require.Equal(t, FrameSize, SampleRate*int(FrameDuration/time.Millisecond)/1000)
	require.Equal(t, FrameSize*Channels, FrameSamples)
	require.Equal(t, FrameSamples*2, FrameBytes)
	require.Equal(t, FrameSize, Format.SampleRate.N(FrameDuration))
}

// --- PCM conversion ---

func TestToPCMClips(t *testing.T) {
	dst := make([]int16, 8)
	ToPCM(dst, [][2]float64{{0, 1}, {-1, 0.5}, {2, -2}, {-0.5, 0}})
	require.Equal(t, []int16{0, 32767, -32767, 16383, 32767, -32768, -16383, 0}, dst)
}

func TestSamplesToBytes(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 256}
	buf := SamplesToBytes(samples)
	require.Len(t, buf, len(samples)*2)

	// 256 = 0x0100 -> bytes [0x00, 0x01]
	idx := 5 * 2
	require.Equal(t, byte(0x00), buf[idx])
	require.Equal(t, byte(0x01), buf[idx+1])
}

func TestSamplesBytesRoundTrip(t *testing.T) {
	original := []int16{0, 1, -1, 32767, -32768, 12345, -6789}
	buf := SamplesToBytes(original)

	recovered := make([]int16, len(buf)/2)
	for i := range recovered {
		recovered[i] = int16(uint16(buf[i*2]) | uint16(buf[i*2+1])<<8)
	}
	require.Equal(t, original, recovered)
}

// --- Stations ---

// constant streams the same sample forever.
type constant float64

func (c constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (c constant) Err() error { return nil }

func writeWAV(t *testing.T, name string, rate beep.SampleRate, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(n, constant(0.5)), format))
	return path
}

func TestChannelVolume(t *testing.T) {
	m := NewMixer()
	o := NewOpener(m, logging.Discard())
	defer o.Close()

	p, err := o.Open(station.Source{Path: writeWAV(t, "a.wav", SampleRate, 4800), Name: "a"})
	require.NoError(t, err)
	ch, err := p.Play(true)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	m.Lock()
	require.Equal(t, 1.0, ch.Volume(), "stations start at full volume")
	ch.SetVolume(0.5)
	require.InDelta(t, 0.5, ch.Volume(), 1e-12)
	m.Unlock()

	buf := make([][2]float64, 100)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	require.InDelta(t, 0.25, buf[50][0], 1e-3)

	m.Lock()
	ch.SetVolume(0)
	require.Equal(t, 0.0, ch.Volume())
	m.Unlock()
	m.Stream(buf)
	require.Equal(t, 0.0, buf[50][0])

	m.Lock()
	ch.SetVolume(1)
	require.Equal(t, 1.0, ch.Volume())
	ch.SetVolume(3)
	require.Equal(t, 1.0, ch.Volume(), "gain is capped at unity")
	m.Unlock()
}

// gatedStreamer blocks its first Stream call until released, standing in
// for a station that is slow to decode.
type gatedStreamer struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStreamer() *gatedStreamer {
	return &gatedStreamer{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStreamer) Stream(samples [][2]float64) (int, bool) {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	for i := range samples {
		samples[i] = [2]float64{0.5, 0.5}
	}
	return len(samples), true
}

func (g *gatedStreamer) Err() error { return nil }

func TestVolumeChangeDoesNotWaitForRender(t *testing.T) {
	m := NewMixer()
	slow := newGatedStreamer()
	var releaseOnce sync.Once
	release := func() { releaseOnce.Do(func() { close(slow.release) }) }
	t.Cleanup(release)

	ch := m.addChannel(slow)
	reg, err := station.NewRegistry([]station.Station{
		{Source: station.Source{Name: "slow"}, VFreq: 1, Channel: ch},
		{Source: station.Source{Name: "quiet"}, VFreq: 2, Channel: m.addChannel(constant(0))},
	})
	require.NoError(t, err)
	ctrl := tuner.NewController(reg, tuner.WithLocker(m))

	rendered := make(chan [][2]float64, 1)
	go func() {
		buf := make([][2]float64, 64)
		m.Stream(buf)
		rendered <- buf
	}()
	select {
	case <-slow.entered:
	case <-time.After(time.Second):
		t.Fatal("render never started")
	}

	tuned := make(chan struct{})
	go func() {
		ctrl.OnVFreqChanged(1.5)
		close(tuned)
	}()
	select {
	case <-tuned:
	case <-time.After(time.Second):
		t.Fatal("tuning waited for the render to finish")
	}

	m.Lock()
	require.InDelta(t, 0.5, ch.Volume(), 1e-12)
	m.Unlock()

	// The render already under way keeps the gains it started with.
	release()
	buf := <-rendered
	require.InDelta(t, 0.5, buf[10][0], 1e-9)

	// The next one picks up the new vector.
	m.Stream(buf)
	require.InDelta(t, 0.25, buf[10][0], 1e-9)
}

func TestSetVolumeNaNIsSilent(t *testing.T) {
	m := NewMixer()
	ch := m.addChannel(constant(0.5))

	m.Lock()
	ch.SetVolume(math.NaN())
	require.Equal(t, 0.0, ch.Volume())
	m.Unlock()

	buf := make([][2]float64, 16)
	m.Stream(buf)
	require.Equal(t, 0.0, buf[8][0])
}

func TestPlayLoops(t *testing.T) {
	m := NewMixer()
	o := NewOpener(m, logging.Discard())
	defer o.Close()

	p, err := o.Open(station.Source{Path: writeWAV(t, "short.wav", SampleRate, 100), Name: "short"})
	require.NoError(t, err)
	_, err = p.Play(true)
	require.NoError(t, err)

	buf := make([][2]float64, 350)
	m.Stream(buf)
	for i, s := range buf {
		require.InDelta(t, 0.5, s[0], 1e-3, "sample %d", i)
	}
}

func TestPlayResamples(t *testing.T) {
	m := NewMixer()
	o := NewOpener(m, logging.Discard())
	defer o.Close()

	p, err := o.Open(station.Source{Path: writeWAV(t, "cd.wav", 44100, 44100), Name: "cd"})
	require.NoError(t, err)
	_, err = p.Play(true)
	require.NoError(t, err)

	buf := make([][2]float64, FrameSize)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, FrameSize, n)
	require.InDelta(t, 0.5, buf[FrameSize/2][0], 1e-2)
}

func TestEmptyMixerIsSilent(t *testing.T) {
	buf := [][2]float64{{1, 1}, {1, 1}}
	n, ok := NewMixer().Stream(buf)
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, [][2]float64{{0, 0}, {0, 0}}, buf)
}

func TestDecodeFileErrors(t *testing.T) {
	_, _, err := DecodeFile("song.flac")
	require.ErrorIs(t, err, ErrUnsupported)

	_, _, err = DecodeFile(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("definitely not a riff header"), 0o644))
	_, _, err = DecodeFile(bad)
	require.Error(t, err)
}

// --- Pipeline ---

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(constant(0.5))
	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	select {
	case frame := <-p.Frames():
		require.Len(t, frame, FrameSamples)
		require.Equal(t, int16(16383), frame[0])
		require.Equal(t, int16(16383), frame[FrameSamples-1])
	case <-time.After(time.Second):
		t.Fatal("no frame")
	}

	cancel()
	for range p.Frames() {
	}
	frames, dropped := p.Stats()
	require.GreaterOrEqual(t, frames, uint64(1))
	require.Zero(t, dropped)
}

func TestPipelineTapFrames(t *testing.T) {
	p := NewPipeline(constant(0.5))
	tap := p.Tap()

	n, ok := tap.Stream(make([][2]float64, 1500))
	require.True(t, ok)
	require.Equal(t, 1500, n)
	require.Len(t, p.Frames(), 1)

	tap.Stream(make([][2]float64, 500))
	require.Len(t, p.Frames(), 2)

	frame := <-p.Frames()
	require.Len(t, frame, FrameSamples)
	require.Equal(t, int16(16383), frame[100])
}

func TestPipelineTapDropsWhenFull(t *testing.T) {
	p := NewPipeline(constant(0))
	tap := p.Tap()

	tap.Stream(make([][2]float64, FrameSize*105))

	frames, dropped := p.Stats()
	require.Equal(t, uint64(100), frames)
	require.Equal(t, uint64(5), dropped)
}
