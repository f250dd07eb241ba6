// cmd/send.go
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/morserx/internal/adc"
	"github.com/ColonelBlimp/morserx/internal/config"
	"github.com/ColonelBlimp/morserx/internal/morse"
)

var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Encode text and decode it through the local pipeline",
	Long: `Encodes the given text into the voltage samples a keyed light source
would produce and runs them through the decoder. A loopback check of
the configured timing, without hardware.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(text string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	// Voltage swing of the reference sensor: ~10mV dark, ~100mV lit
	// at the default 40mV threshold. Scale with the threshold so a
	// reconfigured pipeline still crosses its own hysteresis band.
	onMV := settings.ThresholdMV * 5 / 2
	offMV := settings.ThresholdMV / 4

	timeline := morse.EncodeText(text)
	samples := morse.Samples(timeline, settings.DotMS, settings.SampleIntervalMS, onMV, offMV)
	source := adc.NewReplaySource(samples)
	defer source.Close()

	recv, pub, err := buildPipeline(settings, source)
	if err != nil {
		return err
	}
	defer pub.Close()

	// Timing is baked into the sample count; no need to pace replay
	return recv.Drain()
}
