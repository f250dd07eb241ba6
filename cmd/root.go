// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/morserx/internal/adc"
	"github.com/ColonelBlimp/morserx/internal/config"
	"github.com/ColonelBlimp/morserx/internal/level"
	"github.com/ColonelBlimp/morserx/internal/morse"
	"github.com/ColonelBlimp/morserx/internal/mqtt"
	"github.com/ColonelBlimp/morserx/internal/receiver"
)

var rootCmd = &cobra.Command{
	Use:   "morserx",
	Short: "Optical Morse code receiver",
	Long: `Decodes a light-keyed Morse transmission from photo-sensor voltage
samples and outputs the recovered words.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReceiver()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("threshold", "t", 40, "level threshold in mV")
	rootCmd.PersistentFlags().IntP("dot", "d", 50, "dot unit duration in ms")
	rootCmd.PersistentFlags().StringP("port", "p", "/dev/ttyUSB0", "sensor board serial port")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	// Bind flags to viper
	viper.BindPFlag("threshold_mv", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("dot_ms", rootCmd.PersistentFlags().Lookup("dot"))
	viper.BindPFlag("serial_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

// runReceiver wires the pipeline from the configured source and runs
// it until interrupted.
func runReceiver() error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	var source adc.Source
	switch settings.Source {
	case "serial":
		source, err = adc.NewSerialSource(adc.SerialConfig{
			Port: settings.SerialPort,
			Baud: settings.SerialBaud,
		})
		if err != nil {
			return err
		}
	case "replay":
		// Replay mode reads millivolt lines from stdin
		source = adc.NewReaderSource(os.Stdin)
	default:
		return fmt.Errorf("unknown source %q", settings.Source)
	}
	defer source.Close()

	recv, pub, err := buildPipeline(settings, source)
	if err != nil {
		return err
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return recv.Run(ctx)
}

// buildPipeline assembles conditioner, decoder, publisher and
// receiver from validated settings.
func buildPipeline(settings *config.Settings, source adc.Source) (*receiver.Receiver, mqtt.Publisher, error) {
	cond, err := level.NewConditioner(level.Config{
		ThresholdMV:      settings.ThresholdMV,
		HysteresisMV:     settings.HysteresisMV,
		SampleIntervalMS: settings.SampleIntervalMS,
	})
	if err != nil {
		return nil, nil, err
	}

	dec, err := morse.NewDecoder(morse.Config{DotMS: settings.DotMS})
	if err != nil {
		return nil, nil, err
	}

	var pub mqtt.Publisher
	if settings.MQTTEnabled {
		pub, err = mqtt.NewRealPublisher(settings.MQTTBroker, settings.MQTTTopic)
		if err != nil {
			return nil, nil, err
		}
	} else {
		pub = mqtt.NewConsolePublisher(os.Stdout)
	}

	recv, err := receiver.New(receiver.Config{
		SampleInterval: time.Duration(settings.SampleIntervalMS) * time.Millisecond,
		Debug:          settings.Debug,
	}, source, cond, dec, pub)
	if err != nil {
		pub.Close()
		return nil, nil, err
	}

	return recv, pub, nil
}
