// Package config handles viewer configuration and scene loading.
package config

import (
	"time"

	"github.com/Faultbox/towerview/internal/parallax"
	"github.com/Faultbox/towerview/pkg/choreo"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Motion  MotionConfig  `yaml:"motion"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the preview window.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	// Mobile forces the small-viewport behaviour regardless of width.
	Mobile bool `yaml:"mobile"`
}

// MotionConfig holds the timing and damping constants of the choreography.
type MotionConfig struct {
	TweenDuration    time.Duration   `yaml:"tween_duration"`
	TweenEasing      string          `yaml:"tween_easing"`
	FadeDelay        time.Duration   `yaml:"fade_delay"`
	FOV              choreo.FOVRange `yaml:"fov"`
	Parallax         parallax.Config `yaml:"parallax"`
	ScrollStep       float64         `yaml:"scroll_step"`
	MobileBreakpoint int             `yaml:"mobile_breakpoint"`
}

// SceneConfig points at the scene description.
type SceneConfig struct {
	// Path is a YAML or TOML scene file. Empty uses the built-in scene.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Motion: MotionConfig{
			TweenDuration:    1500 * time.Millisecond,
			TweenEasing:      choreo.DefaultEasingName,
			FadeDelay:        500 * time.Millisecond,
			FOV:              choreo.FOVRange{Min: 10, Max: 100},
			Parallax:         parallax.DefaultConfig(),
			ScrollStep:       80,
			MobileBreakpoint: 768,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Easing resolves the configured tween easing.
func (m MotionConfig) Easing() choreo.Easing {
	if e, ok := choreo.EasingByName(m.TweenEasing); ok {
		return e
	}
	return choreo.Power2InOut
}
