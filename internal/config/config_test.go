package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"AUDIO_PATH", "MIN_VFREQ", "MAX_VFREQ", "TUNING_STEP",
	"VOLUME_STEP", "MIXER_SINK",
	"GPIO_ENABLED", "TUNED_LED_PIN",
	"VOLUME_PIN_CLK", "VOLUME_PIN_DT", "VOLUME_PIN_SW",
	"TUNING_PIN_CLK", "TUNING_PIN_DT", "TUNING_PIN_SW",
	"SPEAKER_ENABLED", "CONSOLE_ENABLED", "HTTP_PORT", "DEBUG",
}

// clearEnv unsets every variable Load reads and moves into an empty directory
// so no stray .env file is picked up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", "/home/pi")

	cfg := Load()

	assert.Equal(t, filepath.Join("/home/pi", "audio"), cfg.AudioPath)
	assert.Equal(t, 1.0, cfg.MinVFreq)
	assert.Equal(t, 300.0, cfg.MaxVFreq)
	assert.Equal(t, 1.0, cfg.TuningStep)
	assert.Equal(t, 1, cfg.VolumeStep)
	assert.Equal(t, "0", cfg.MixerSink)
	assert.False(t, cfg.GPIOEnabled)
	assert.Equal(t, 25, cfg.TunedLEDPin)
	assert.Equal(t, [3]int{5, 6, 13}, [3]int{cfg.VolumePinCLK, cfg.VolumePinDT, cfg.VolumePinSW})
	assert.Equal(t, [3]int{17, 27, 22}, [3]int{cfg.TuningPinCLK, cfg.TuningPinDT, cfg.TuningPinSW})
	assert.True(t, cfg.SpeakerEnabled)
	assert.True(t, cfg.ConsoleEnabled)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIO_PATH", "/srv/stations")
	t.Setenv("MIN_VFREQ", "88.1")
	t.Setenv("MAX_VFREQ", "107.9")
	t.Setenv("TUNING_STEP", "0.2")
	t.Setenv("VOLUME_STEP", "5")
	t.Setenv("MIXER_SINK", "alsa_output.usb")
	t.Setenv("GPIO_ENABLED", "true")
	t.Setenv("TUNED_LED_PIN", "12")
	t.Setenv("VOLUME_PIN_CLK", "1")
	t.Setenv("VOLUME_PIN_DT", "2")
	t.Setenv("VOLUME_PIN_SW", "3")
	t.Setenv("TUNING_PIN_CLK", "4")
	t.Setenv("TUNING_PIN_DT", "7")
	t.Setenv("TUNING_PIN_SW", "8")
	t.Setenv("SPEAKER_ENABLED", "false")
	t.Setenv("CONSOLE_ENABLED", "0")
	t.Setenv("HTTP_PORT", "0")
	t.Setenv("DEBUG", "1")

	cfg := Load()

	assert.Equal(t, "/srv/stations", cfg.AudioPath)
	assert.Equal(t, 88.1, cfg.MinVFreq)
	assert.Equal(t, 107.9, cfg.MaxVFreq)
	assert.Equal(t, 0.2, cfg.TuningStep)
	assert.Equal(t, 5, cfg.VolumeStep)
	assert.Equal(t, "alsa_output.usb", cfg.MixerSink)
	assert.True(t, cfg.GPIOEnabled)
	assert.Equal(t, 12, cfg.TunedLEDPin)
	assert.Equal(t, [3]int{1, 2, 3}, [3]int{cfg.VolumePinCLK, cfg.VolumePinDT, cfg.VolumePinSW})
	assert.Equal(t, [3]int{4, 7, 8}, [3]int{cfg.TuningPinCLK, cfg.TuningPinDT, cfg.TuningPinSW})
	assert.False(t, cfg.SpeakerEnabled)
	assert.False(t, cfg.ConsoleEnabled)
	assert.Equal(t, 0, cfg.HTTPPort)
	assert.True(t, cfg.Debug)
}

func TestInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("MAX_VFREQ", "lots")
	t.Setenv("DEBUG", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 300.0, cfg.MaxVFreq)
	assert.False(t, cfg.Debug)
}

func TestNonFiniteVFreqFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIN_VFREQ", "NaN")
	t.Setenv("MAX_VFREQ", "+Inf")
	t.Setenv("TUNING_STEP", "-inf")

	cfg := Load()

	assert.Equal(t, 1.0, cfg.MinVFreq)
	assert.Equal(t, 300.0, cfg.MaxVFreq)
	assert.Equal(t, 1.0, cfg.TuningStep)
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("MAX_VFREQ=150\nVOLUME_STEP=3\n"), 0o644))
	t.Setenv("VOLUME_STEP", "7")

	cfg := Load()

	assert.Equal(t, 150.0, cfg.MaxVFreq)
	// the process environment wins over .env
	assert.Equal(t, 7, cfg.VolumeStep)
}
