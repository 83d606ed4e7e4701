package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/satindergrewal/dial/internal/api"
	"github.com/satindergrewal/dial/internal/audio"
	"github.com/satindergrewal/dial/internal/config"
	"github.com/satindergrewal/dial/internal/hardware"
	"github.com/satindergrewal/dial/internal/input"
	ilog "github.com/satindergrewal/dial/internal/logging"
	"github.com/satindergrewal/dial/internal/mixer"
	"github.com/satindergrewal/dial/internal/station"
	"github.com/satindergrewal/dial/internal/stream"
	"github.com/satindergrewal/dial/internal/tuner"
)

var rootCmd = &cobra.Command{
	Use:   "dial",
	Short: "An analog radio tuner over a folder of audio files",
	Long: `dial lays the audio files under AUDIO_PATH out on a virtual frequency
scale and plays them all at once. Turning the tuning knob crossfades between
neighbouring stations; the tuned LED lights when one of them is at full
volume.`,
	SilenceUsage: true,
	RunE:         runDial,
}

func init() {
	addFlags(rootCmd)
}

func addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("audio-path", "", "directory holding the station files (overrides AUDIO_PATH)")
	cmd.PersistentFlags().Bool("debug", false, "debug logging (overrides DEBUG)")
	cmd.Flags().Int("port", 0, "control API port, 0 disables (overrides HTTP_PORT)")
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("audio-path") {
		cfg.AudioPath, _ = flags.GetString("audio-path")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("port") {
		cfg.HTTPPort, _ = flags.GetInt("port")
	}
	return cfg
}

func runDial(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	factory := ilog.NewFactory(cfg.Debug, cmd.ErrOrStderr())
	log := factory.NewLogger("dial")

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Infof("dial starting up, stations from %s", cfg.AudioPath)

	// Stations: decode every file into the shared mixer
	mix := audio.NewMixer()
	opener := audio.NewOpener(mix, factory.NewLogger(ilog.ScopeAudio))
	defer opener.Close()

	reg, err := loadStations(cfg, opener, factory)
	if err != nil {
		return err
	}
	log.Infof("%d stations between %g and %g (%d skipped)", reg.Len(), cfg.MinVFreq, cfg.MaxVFreq, reg.Skipped())

	// GPIO (optional)
	var gpio *hardware.GPIO
	var indicator tuner.Indicator = tuner.NoopIndicator{}
	if cfg.GPIOEnabled {
		gpio, err = hardware.Open(factory.NewLogger(ilog.ScopeGPIO))
		if err != nil {
			log.Warnf("GPIO unavailable, knobs and tuned LED disabled: %v", err)
		} else {
			defer gpio.Close()
			indicator = gpio.LED(cfg.TunedLEDPin)
		}
	}

	// Tuning
	ctrl := tuner.NewController(reg,
		tuner.WithIndicator(indicator),
		tuner.WithLocker(mix),
		tuner.WithLogger(factory.NewLogger(ilog.ScopeTuner)),
	)
	dial := input.NewDial(cfg.MinVFreq, cfg.MaxVFreq, cfg.TuningStep, ctrl.OnVFreqChanged)
	ctrl.OnVFreqChanged(dial.Position())

	// Global volume
	mixerLog := factory.NewLogger(ilog.ScopeMixer)
	volume := mixer.NewController(mixer.NewPactl(cfg.MixerSink, mixerLog), cfg.VolumeStep, mixerLog)

	// Audio out: the speaker pulls the mix when present, otherwise the
	// pipeline paces it in real time for the network listeners
	pipeline := audio.NewPipeline(mix)
	if cfg.SpeakerEnabled {
		if err := audio.PlayLocal(pipeline.Tap()); err != nil {
			log.Warnf("Local playback unavailable, running headless: %v", err)
			go pipeline.Run(ctx)
		} else {
			defer audio.StopLocal()
		}
	} else {
		go pipeline.Run(ctx)
	}

	broadcaster := stream.NewBroadcaster()
	go broadcaster.Run(ctx, pipeline.Frames())

	// Knobs
	if gpio != nil {
		tuning := gpio.Encoder(cfg.TuningPinCLK, cfg.TuningPinDT, cfg.TuningPinSW)
		tuning.OnIncrement = func() { dial.Step(1) }
		tuning.OnDecrement = func() { dial.Step(-1) }

		vol := gpio.Encoder(cfg.VolumePinCLK, cfg.VolumePinDT, cfg.VolumePinSW)
		vol.OnIncrement = volume.Increment
		vol.OnDecrement = volume.Decrement
		vol.OnPress = volume.ToggleMute

		go tuning.Watch(ctx)
		go vol.Watch(ctx)
	}

	// Control API and remote listening
	if cfg.HTTPPort > 0 {
		streamLog := factory.NewLogger(ilog.ScopeStream)
		webrtcHandler := stream.NewWebRTCHandler(broadcaster, factory)
		defer webrtcHandler.Close()

		apiLog := factory.NewLogger(ilog.ScopeAPI)
		router := api.NewRouter(api.Deps{
			Tuner:     ctrl,
			Dial:      dial,
			Volume:    volume,
			Stations:  reg,
			Stream:    stream.NewHTTPHandler(broadcaster, "dial", streamLog),
			Offer:     webrtcHandler,
			Log:       apiLog,
			AccessLog: cmd.ErrOrStderr(),
		})
		go func() {
			if err := api.Serve(ctx, router, fmt.Sprintf(":%d", cfg.HTTPPort), apiLog); err != nil {
				log.Errorf("HTTP server error: %v", err)
				cancel()
			}
		}()
	}

	if cfg.ConsoleEnabled {
		console := input.NewConsole(dial, volume, ctrl.Status, factory.NewLogger(ilog.ScopeInput))
		go func() {
			if err := console.Run(ctx); err != nil {
				log.Errorf("Console: %v", err)
			}
			cancel()
		}()
	}

	<-ctx.Done()
	frames, dropped := pipeline.Stats()
	log.Infof("Shutting down... (%d frames rendered, %d dropped)", frames, dropped)
	return nil
}

// loadStations discovers the station files and starts them all playing.
func loadStations(cfg config.Config, opener station.Opener, factory logging.LoggerFactory) (*station.Registry, error) {
	sources, err := station.Discover(cfg.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("discover stations: %w", err)
	}
	reg, err := station.Build(sources, opener, cfg.MinVFreq, cfg.MaxVFreq, factory.NewLogger(ilog.ScopeStation))
	if errors.Is(err, station.ErrEmptyRegistry) {
		return nil, fmt.Errorf("no playable stations in %s: %w", cfg.AudioPath, err)
	}
	return reg, err
}
