package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Stations
	AudioPath  string
	MinVFreq   float64
	MaxVFreq   float64
	TuningStep float64 // vfreq per encoder detent

	// Global volume
	VolumeStep int    // percent per encoder detent
	MixerSink  string // pactl sink

	// GPIO (BCM numbering)
	GPIOEnabled  bool
	TunedLEDPin  int
	VolumePinCLK int
	VolumePinDT  int
	VolumePinSW  int
	TuningPinCLK int
	TuningPinDT  int
	TuningPinSW  int

	// Outputs and adapters
	SpeakerEnabled bool
	ConsoleEnabled bool
	HTTPPort       int // 0 disables the control and stream server

	Debug bool
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first; variables already
// set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AudioPath:  envStr("AUDIO_PATH", filepath.Join(os.Getenv("HOME"), "audio")),
		MinVFreq:   envFloat("MIN_VFREQ", 1),
		MaxVFreq:   envFloat("MAX_VFREQ", 300),
		TuningStep: envFloat("TUNING_STEP", 1),

		VolumeStep: envInt("VOLUME_STEP", 1),
		MixerSink:  envStr("MIXER_SINK", "0"),

		GPIOEnabled:  envBool("GPIO_ENABLED", false),
		TunedLEDPin:  envInt("TUNED_LED_PIN", 25),
		VolumePinCLK: envInt("VOLUME_PIN_CLK", 5),
		VolumePinDT:  envInt("VOLUME_PIN_DT", 6),
		VolumePinSW:  envInt("VOLUME_PIN_SW", 13),
		TuningPinCLK: envInt("TUNING_PIN_CLK", 17),
		TuningPinDT:  envInt("TUNING_PIN_DT", 27),
		TuningPinSW:  envInt("TUNING_PIN_SW", 22),

		SpeakerEnabled: envBool("SPEAKER_ENABLED", true),
		ConsoleEnabled: envBool("CONSOLE_ENABLED", true),
		HTTPPort:       envInt("HTTP_PORT", 8080),

		Debug: envBool("DEBUG", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
