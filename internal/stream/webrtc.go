package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"gopkg.in/hraban/opus.v2"

	"github.com/satindergrewal/dial/internal/audio"
)

const opusBitrate = 128000

// WebRTCHandler serves WebRTC SDP negotiation for low-latency Opus streaming.
type WebRTCHandler struct {
	broadcaster *Broadcaster
	api         *webrtc.API
	log         logging.LeveledLogger

	mu    sync.Mutex
	peers map[string]*webrtc.PeerConnection
}

// NewWebRTCHandler creates a WebRTC stream handler. pion logs through
// factory.
func NewWebRTCHandler(b *Broadcaster, factory logging.LoggerFactory) *WebRTCHandler {
	se := webrtc.SettingEngine{LoggerFactory: factory}
	return &WebRTCHandler{
		broadcaster: b,
		api:         webrtc.NewAPI(webrtc.WithSettingEngine(se)),
		log:         factory.NewLogger("webrtc"),
		peers:       make(map[string]*webrtc.PeerConnection),
	}
}

// PeerCount returns the number of active WebRTC peers.
func (h *WebRTCHandler) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *WebRTCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var offer webrtc.SessionDescription
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		http.Error(w, "invalid SDP offer", http.StatusBadRequest)
		return
	}

	pc, err := h.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		http.Error(w, "create peer connection failed", http.StatusInternalServerError)
		return
	}

	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: audio.SampleRate, Channels: audio.Channels},
		"audio",
		"dial",
	)
	if err != nil {
		pc.Close()
		http.Error(w, "create audio track failed", http.StatusInternalServerError)
		return
	}

	if _, err := pc.AddTrack(track); err != nil {
		pc.Close()
		http.Error(w, "add track failed", http.StatusInternalServerError)
		return
	}

	if err := pc.SetRemoteDescription(offer); err != nil {
		pc.Close()
		http.Error(w, "set remote description failed", http.StatusBadRequest)
		return
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		pc.Close()
		http.Error(w, "create answer failed", http.StatusInternalServerError)
		return
	}

	gatherComplete := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(answer); err != nil {
		pc.Close()
		http.Error(w, "set local description failed", http.StatusInternalServerError)
		return
	}
	select {
	case <-gatherComplete:
	case <-r.Context().Done():
		pc.Close()
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.peers[id] = pc
	h.mu.Unlock()
	h.log.Infof("WebRTC peer %s connected (total: %d)", id, h.PeerCount())

	listener := h.broadcaster.Subscribe()
	go h.streamToPeer(id, listener, track)

	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		switch s {
		case webrtc.PeerConnectionStateFailed,
			webrtc.PeerConnectionStateClosed,
			webrtc.PeerConnectionStateDisconnected:
			h.broadcaster.Unsubscribe(listener)
			if h.removePeer(id) {
				pc.Close()
				h.log.Infof("WebRTC peer %s disconnected (remaining: %d)", id, h.PeerCount())
			}
		}
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(pc.LocalDescription())
}

func (h *WebRTCHandler) streamToPeer(id string, listener *Listener, track *webrtc.TrackLocalStaticSample) {
	defer h.broadcaster.Unsubscribe(listener)

	enc, err := opus.NewEncoder(audio.SampleRate, audio.Channels, opus.AppAudio)
	if err != nil {
		h.log.Errorf("WebRTC %s: opus encoder: %v", id, err)
		return
	}
	if err := enc.SetBitrate(opusBitrate); err != nil {
		h.log.Warnf("WebRTC %s: set bitrate: %v", id, err)
	}

	opusBuf := make([]byte, 4000)
	for {
		select {
		case <-listener.Done():
			return
		case frame := <-listener.C:
			n, err := enc.Encode(frame, opusBuf)
			if err != nil {
				h.log.Warnf("WebRTC %s: opus encode: %v", id, err)
				continue
			}
			if err := track.WriteSample(media.Sample{
				Data:     opusBuf[:n],
				Duration: audio.FrameDuration,
			}); err != nil {
				return
			}
		}
	}
}

// removePeer reports whether id was still registered.
func (h *WebRTCHandler) removePeer(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[id]; !ok {
		return false
	}
	delete(h.peers, id)
	return true
}

// Close hangs up every peer.
func (h *WebRTCHandler) Close() {
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[string]*webrtc.PeerConnection)
	h.mu.Unlock()
	for _, pc := range peers {
		pc.Close()
	}
}
