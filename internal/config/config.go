// Package config handles diorama configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Faultbox/voxel-citadel/internal/generator"
)

// Config holds all settings. Field rules are checked by Validate.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Castle  CastleConfig  `yaml:"castle" toml:"castle"`
	Water   WaterConfig   `yaml:"water" toml:"water"`
	Mist    MistConfig    `yaml:"mist" toml:"mist"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title" toml:"title"`
	Width         int     `yaml:"width" toml:"width" validate:"gt=0"`
	Height        int     `yaml:"height" toml:"height" validate:"gt=0"`
	Fullscreen    bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync         bool    `yaml:"vsync" toml:"vsync"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio" toml:"max_pixel_ratio" validate:"gte=0"`
}

// CastleConfig holds castle dimensions.
type CastleConfig struct {
	BaseRadius  int `yaml:"base_radius" toml:"base_radius" validate:"gt=0"`
	WallHeight  int `yaml:"wall_height" toml:"wall_height" validate:"gt=0"`
	GateWidth   int `yaml:"gate_width" toml:"gate_width" validate:"gte=0"`
	TowerHeight int `yaml:"tower_height" toml:"tower_height" validate:"gt=0,gtfield=WallHeight"`
	TowerRadius int `yaml:"tower_radius" toml:"tower_radius" validate:"gt=0"`
	KeepRadius  int `yaml:"keep_radius" toml:"keep_radius" validate:"gt=0"`
	KeepHeight  int `yaml:"keep_height" toml:"keep_height" validate:"gt=0"`
}

// WaterConfig holds the animated water plane settings.
type WaterConfig struct {
	Size     float64 `yaml:"size" toml:"size" validate:"gt=0"`
	Segments int     `yaml:"segments" toml:"segments" validate:"gt=0"`
	Level    float64 `yaml:"level" toml:"level"`
}

// MistConfig holds the mist particle settings.
type MistConfig struct {
	Count int    `yaml:"count" toml:"count" validate:"gt=0"`
	Seed  uint64 `yaml:"seed" toml:"seed"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Shadows          bool    `yaml:"shadows" toml:"shadows"`
	ShadowResolution int     `yaml:"shadow_resolution" toml:"shadow_resolution" validate:"required_if=Shadows true,gte=0"`
	Fog              bool    `yaml:"fog" toml:"fog"`
	Exposure         float32 `yaml:"exposure" toml:"exposure" validate:"gt=0"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	FOV         float64 `yaml:"fov" toml:"fov" validate:"gt=0,lt=180"`
	Interactive bool    `yaml:"interactive" toml:"interactive"`
}

// MetricsConfig holds the Prometheus endpoint settings. An empty address
// disables the endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" toml:"addr" validate:"omitempty,hostname_port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the stock diorama values.
func Default() *Config {
	castle := generator.DefaultCastle()
	return &Config{
		Window: WindowConfig{
			Title:         "Citadel of Voxels",
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
		},
		Castle: CastleConfig{
			BaseRadius:  castle.BaseRadius,
			WallHeight:  castle.WallHeight,
			GateWidth:   castle.GateWidth,
			TowerHeight: castle.Tower.Height,
			TowerRadius: castle.Tower.Radius,
			KeepRadius:  castle.Keep.Radius,
			KeepHeight:  castle.Keep.Height,
		},
		Water: WaterConfig{
			Size:     260,
			Segments: 120,
			Level:    -0.5,
		},
		Mist: MistConfig{
			Count: 1200,
			Seed:  1,
		},
		Render: RenderConfig{
			Shadows:          true,
			ShadowResolution: 2048,
			Fog:              true,
			Exposure:         1.1,
		},
		Camera: CameraConfig{
			FOV:         55,
			Interactive: false,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Spec converts the castle section to generator dimensions.
func (c CastleConfig) Spec() generator.CastleSpec {
	spec := generator.DefaultCastle()
	spec.BaseRadius = c.BaseRadius
	spec.WallHeight = c.WallHeight
	spec.GateWidth = c.GateWidth
	spec.Tower = generator.TowerSpec{Height: c.TowerHeight, Radius: c.TowerRadius}
	spec.Keep.Radius = c.KeepRadius
	spec.Keep.Height = c.KeepHeight
	return spec
}

// Validate rejects values the generators and renderer cannot work with.
// Every failing key is reported, named by its YAML path.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, describe(fe))
	}
	return errors.Join(errs...)
}

var validate = newValidator()

// newValidator names fields by their yaml tag so errors read like the
// config file.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) error {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gt":
		return fmt.Errorf("%s must be greater than %s, got %v", key, fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("%s must not be below %s, got %v", key, fe.Param(), fe.Value())
	case "lt":
		return fmt.Errorf("%s must be less than %s, got %v", key, fe.Param(), fe.Value())
	case "gtfield":
		return fmt.Errorf("%s %v must exceed %s", key, fe.Value(), fe.Param())
	case "required_if":
		return fmt.Errorf("%s is required when %s", key, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Errorf("%s must be host:port, got %q", key, fe.Value())
	default:
		return fmt.Errorf("%s fails %s", key, fe.Tag())
	}
}
