package stream

import (
	"context"
	"io"
	"net/http"
	"os/exec"
	"strconv"

	"github.com/pion/logging"

	"github.com/satindergrewal/dial/internal/audio"
)

// HTTPHandler serves a chunked MP3 audio stream via HTTP.
// Each connection spawns an FFmpeg process to encode PCM -> MP3 in real-time.
type HTTPHandler struct {
	broadcaster *Broadcaster
	name        string
	ffmpeg      string
	log         logging.LeveledLogger
}

// NewHTTPHandler creates an HTTP stream handler announcing itself as name.
func NewHTTPHandler(b *Broadcaster, name string, log logging.LeveledLogger) *HTTPHandler {
	return &HTTPHandler{broadcaster: b, name: name, ffmpeg: "ffmpeg", log: log}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// FFmpeg: PCM stdin -> MP3 stdout
	cmd := exec.CommandContext(ctx, h.ffmpeg,
		"-f", "s16le",
		"-ar", strconv.Itoa(audio.SampleRate),
		"-ac", strconv.Itoa(audio.Channels),
		"-i", "pipe:0",
		"-codec:a", "libmp3lame",
		"-b:a", "192k",
		"-f", "mp3",
		"-fflags", "nobuffer",
		"-flush_packets", "1",
		"-loglevel", "error",
		"pipe:1",
	)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		h.log.Errorf("HTTP stream: stdin pipe: %v", err)
		http.Error(w, "encoder unavailable", http.StatusInternalServerError)
		return
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		h.log.Errorf("HTTP stream: stdout pipe: %v", err)
		http.Error(w, "encoder unavailable", http.StatusInternalServerError)
		return
	}
	if err := cmd.Start(); err != nil {
		h.log.Errorf("HTTP stream: start %s: %v", h.ffmpeg, err)
		http.Error(w, "encoder unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache, no-store")
	w.Header().Set("Connection", "close")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("ICY-Name", h.name)

	listener := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(listener)
	h.log.Infof("HTTP listener %s connected (total: %d)", listener.ID, h.broadcaster.ListenerCount())
	defer func() {
		h.log.Infof("HTTP listener %s disconnected (dropped %d frames)", listener.ID, listener.Dropped())
	}()

	// Feed PCM frames to FFmpeg
	go func() {
		defer stdin.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-listener.Done():
				return
			case frame := <-listener.C:
				if _, err := stdin.Write(audio.SamplesToBytes(frame)); err != nil {
					return
				}
			}
		}
	}()

	// Read MP3 from FFmpeg and write to HTTP response
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				break
			}
			flusher.Flush()
		}
		if err != nil {
			if err != io.EOF {
				h.log.Warnf("HTTP stream: ffmpeg read: %v", err)
			}
			break
		}
	}

	cancel()
	cmd.Wait()
}
