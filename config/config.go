package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// New loads the configuration from the environment and panics if it is invalid
func New() *Config {
	cfg, err := Load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic("failed to extract config: " + err.Error())
	}
	return cfg
}

// Load reads the configuration using the given lookuper
func Load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, l); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// DefaultControllerConfig returns the controller config with every default applied
func DefaultControllerConfig() *Controller {
	var cfg Controller
	if err := envconfig.ProcessWith(context.Background(), &cfg, envconfig.MapLookuper(nil)); err != nil {
		panic("failed to extract default config: " + err.Error())
	}
	return &cfg
}

type Config struct {
	Controller    *Controller
	Display       *Display
	MQTTPublisher *MQTTPublisher
	WebSocket     *WebSocket
	Input         *Input
	Indicator     *Indicator
}

type Controller struct {
	BaseColour string `env:"SOFTBOX_BASE_COLOUR,default=#ffffff"`
	Effect     string `env:"SOFTBOX_EFFECT,default=None"`
	Speed      int    `env:"SOFTBOX_SPEED,default=500"`
}

type Display struct {
	Headless bool   `env:"SOFTBOX_DISPLAY_HEADLESS,default=false"`
	LogFile  string `env:"SOFTBOX_LOG_FILE,default=softbox.log"`
	// SpeedStep is how far the arrow keys move the speed, in milliseconds
	SpeedStep   int `env:"SOFTBOX_DISPLAY_SPEED_STEP,default=50"`
	ChannelStep int `env:"SOFTBOX_DISPLAY_CHANNEL_STEP,default=5"`
}

type MQTTPublisher struct {
	Enabled     bool   `env:"SOFTBOX_MQTT_ENABLED,default=false"`
	Scheme      string `env:"SOFTBOX_MQTT_SCHEME,default=tcp"`
	Host        string `env:"SOFTBOX_MQTT_HOST,default=localhost:1883"`
	ClientID    string `env:"SOFTBOX_MQTT_CLIENT_ID,default=softbox"`
	TopicPrefix string `env:"SOFTBOX_MQTT_TOPIC_PREFIX,default=SOFTBOX/CONTROLLER"`
}

type WebSocket struct {
	Enabled      bool          `env:"SOFTBOX_WS_ENABLED,default=false"`
	Address      string        `env:"SOFTBOX_WS_ADDRESS,default=:8080"`
	WriteTimeout time.Duration `env:"SOFTBOX_WS_WRITE_TIMEOUT,default=2s"`
}

// Input modes for the ADS1115 attached controls
const (
	InputKnob    = "knob"
	InputButtons = "buttons"
)

type Input struct {
	Enabled bool `env:"SOFTBOX_INPUT_ENABLED,default=false"`
	// Mode is either a speed potentiometer (knob) or a resistor ladder of buttons
	Mode     string        `env:"SOFTBOX_INPUT_MODE,default=knob"`
	Bus      string        `env:"SOFTBOX_INPUT_BUS,default=I2C1"`
	Address  uint16        `env:"SOFTBOX_INPUT_ADDRESS,default=72"`
	PollRate time.Duration `env:"SOFTBOX_INPUT_POLL_RATE,default=5ms"`
	ReadRate time.Duration `env:"SOFTBOX_INPUT_READ_RATE,default=30ms"`

	// DeadBand is the smallest speed change in milliseconds the knob reports
	DeadBand int `env:"SOFTBOX_INPUT_DEAD_BAND,default=20"`

	EffectTarget []int         `env:"SOFTBOX_INPUT_EFFECT_TARGET,default=200"`
	PresetTarget []int         `env:"SOFTBOX_INPUT_PRESET_TARGET,default=400"`
	FasterTarget []int         `env:"SOFTBOX_INPUT_FASTER_TARGET,default=600"`
	SlowerTarget []int         `env:"SOFTBOX_INPUT_SLOWER_TARGET,default=800"`
	TargetRange  int           `env:"SOFTBOX_INPUT_TARGET_RANGE,default=80"`
	HoldDuration time.Duration `env:"SOFTBOX_INPUT_HOLD_DURATION,default=2s"`
	SpeedStep    int           `env:"SOFTBOX_INPUT_SPEED_STEP,default=50"`
}

type Indicator struct {
	Enabled bool `env:"SOFTBOX_INDICATOR_ENABLED,default=false"`
	LEDPin  int  `env:"SOFTBOX_INDICATOR_LED_PIN,default=13"`
}
