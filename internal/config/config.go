// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "morserx"
	ConfigType    = "yaml"
	DefaultConfig = `# Morse Receiver Configuration

# Level detection
threshold_mv: 40        # Midpoint voltage between LED off (~10mV) and LED on (~100mV)
hysteresis_mv: 5        # Overshoot past threshold required to flip state (rejects chatter)

# Timing
dot_ms: 50              # Dot unit duration in milliseconds
sample_interval_ms: 10  # Sampling cadence

# Sample source
source: "serial"        # "serial" (sensor board) or "replay" (scripted samples)
serial_port: "/dev/ttyUSB0"  # Sensor board device (one millivolt value per line)
serial_baud: 115200     # Serial line rate

# Output
mqtt_enabled: false     # Publish decoded words to MQTT (console output otherwise)
mqtt_broker: "tcp://localhost:1883"  # MQTT broker address
mqtt_topic: "morserx/words"          # Topic for decoded words
debug: false            # Enable per-edge debug output
`
)

// Settings holds all application configuration
type Settings struct {
	// Level detection
	ThresholdMV  int `mapstructure:"threshold_mv"`
	HysteresisMV int `mapstructure:"hysteresis_mv"`

	// Timing
	DotMS            int `mapstructure:"dot_ms"`
	SampleIntervalMS int `mapstructure:"sample_interval_ms"`

	// Sample source
	Source     string `mapstructure:"source"`
	SerialPort string `mapstructure:"serial_port"`
	SerialBaud int    `mapstructure:"serial_baud"`

	// Output
	MQTTEnabled bool   `mapstructure:"mqtt_enabled"`
	MQTTBroker  string `mapstructure:"mqtt_broker"`
	MQTTTopic   string `mapstructure:"mqtt_topic"`
	Debug       bool   `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/morserx/
func Init() error {
	// Set defaults
	viper.SetDefault("threshold_mv", 40)
	viper.SetDefault("hysteresis_mv", 5)
	viper.SetDefault("dot_ms", 50)
	viper.SetDefault("sample_interval_ms", 10)
	viper.SetDefault("source", "serial")
	viper.SetDefault("serial_port", "/dev/ttyUSB0")
	viper.SetDefault("serial_baud", 115200)
	viper.SetDefault("mqtt_enabled", false)
	viper.SetDefault("mqtt_broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt_topic", "morserx/words")
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/morserx/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Level detection
	if s.ThresholdMV < 1 || s.ThresholdMV > 3300 {
		errs = append(errs, fmt.Errorf("threshold_mv must be between 1 and 3300 mV, got %d", s.ThresholdMV))
	}
	if s.HysteresisMV < 0 || s.HysteresisMV > 500 {
		errs = append(errs, fmt.Errorf("hysteresis_mv must be between 0 and 500 mV, got %d", s.HysteresisMV))
	}
	if s.HysteresisMV >= s.ThresholdMV {
		errs = append(errs, fmt.Errorf("hysteresis_mv (%d) must be less than threshold_mv (%d)", s.HysteresisMV, s.ThresholdMV))
	}

	// Timing
	if s.DotMS < 10 || s.DotMS > 2000 {
		errs = append(errs, fmt.Errorf("dot_ms must be between 10 and 2000 ms, got %d", s.DotMS))
	}
	if s.SampleIntervalMS < 1 || s.SampleIntervalMS > 100 {
		errs = append(errs, fmt.Errorf("sample_interval_ms must be between 1 and 100 ms, got %d", s.SampleIntervalMS))
	}
	// A dot spanning fewer than two sampling ticks cannot be classified reliably
	if s.DotMS < 2*s.SampleIntervalMS {
		errs = append(errs, fmt.Errorf("dot_ms (%d) must be at least twice sample_interval_ms (%d)", s.DotMS, s.SampleIntervalMS))
	}

	// Sample source
	validSources := map[string]bool{
		"serial": true,
		"replay": true,
	}
	if !validSources[s.Source] {
		errs = append(errs, fmt.Errorf("source must be one of serial, replay, got %q", s.Source))
	}
	if s.Source == "serial" && s.SerialPort == "" {
		errs = append(errs, fmt.Errorf("serial_port is required when source is serial"))
	}
	validBauds := map[int]bool{
		9600:   true,
		19200:  true,
		38400:  true,
		57600:  true,
		115200: true,
		230400: true,
	}
	if !validBauds[s.SerialBaud] {
		errs = append(errs, fmt.Errorf("serial_baud must be one of 9600, 19200, 38400, 57600, 115200, 230400, got %d", s.SerialBaud))
	}

	// Output
	if s.MQTTEnabled && s.MQTTBroker == "" {
		errs = append(errs, fmt.Errorf("mqtt_broker is required when mqtt_enabled is true"))
	}
	if s.MQTTEnabled && s.MQTTTopic == "" {
		errs = append(errs, fmt.Errorf("mqtt_topic is required when mqtt_enabled is true"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
