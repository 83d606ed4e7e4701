package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupported is returned for files the decoder has no codec for.
var ErrUnsupported = errors.New("audio: unsupported format")

// DecodeFile opens an MP3 or WAV file as a seekable stereo stream. The
// stream owns the file; closing it closes the file.
func DecodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".wav" {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, format, nil
}

// ToPCM converts float samples in [-1,1] to interleaved int16, clipping
// anything outside the range. dst must hold 2*len(samples) values.
func ToPCM(dst []int16, samples [][2]float64) {
	for i, s := range samples {
		dst[i*2] = clip16(s[0] * 32767)
		dst[i*2+1] = clip16(s[1] * 32767)
	}
}

func clip16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
