package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satindergrewal/dial/internal/audio"
	ilog "github.com/satindergrewal/dial/internal/logging"
	"github.com/satindergrewal/dial/internal/station"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the stations and where they sit on the dial",
	Long:  `Decodes every file under the audio path, skipping the ones that fail, and prints the resulting dial layout without starting playback.`,
	RunE:  runStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	factory := ilog.NewFactory(cfg.Debug, cmd.ErrOrStderr())

	// Nothing pulls from this mixer, so the stations never advance.
	opener := audio.NewOpener(audio.NewMixer(), factory.NewLogger(ilog.ScopeAudio))
	defer opener.Close()

	reg, err := loadStations(cfg, opener, factory)
	if err != nil {
		return err
	}
	return printStations(cmd.OutOrStdout(), reg)
}

func printStations(w io.Writer, reg *station.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VFREQ\tNAME\tPATH")
	for _, s := range reg.Stations() {
		fmt.Fprintf(tw, "%g\t%s\t%s\n", s.VFreq, s.Name, s.Path)
	}
	if n := reg.Skipped(); n > 0 {
		fmt.Fprintf(tw, "\t(%d skipped)\t\n", n)
	}
	return tw.Flush()
}
