// choreoctl checks and samples camera choreography scenes without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/towerview/internal/assets"
	"github.com/Faultbox/towerview/internal/config"
	"github.com/Faultbox/towerview/internal/scroll"
	"github.com/Faultbox/towerview/pkg/choreo"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate", "check":
		cmdValidate(args)
	case "sample":
		cmdSample(args)
	case "rooms":
		cmdRooms(args)
	case "easings":
		fmt.Println(strings.Join(choreo.EasingNames(), "\n"))
	case "default":
		os.Stdout.Write(assets.DefaultScene)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`choreoctl - camera choreography scene utility

Usage:
  choreoctl <command> [options]

Commands:
  validate <scene>             Check a scene file and print a summary
  sample [-steps N] <scene>    Print scroll poses at evenly spaced offsets
  rooms <scene>                Print the room camera track
  easings                      List easing names
  default                      Print the built-in scene

Scene files are .yaml, .yml or .toml. Use "-" for the built-in scene.

Examples:
  choreoctl validate tower.toml
  choreoctl sample -steps 24 tower.yaml
  choreoctl rooms -`)
}

// fovFlags adds the field of view limits shared by every command.
func fovFlags(fs *flag.FlagSet) *choreo.FOVRange {
	r := config.Default().Motion.FOV
	fs.Var(float32Value{&r.Min}, "fov-min", "Smallest accepted field of view")
	fs.Var(float32Value{&r.Max}, "fov-max", "Largest accepted field of view")
	return &r
}

func loadScene(path string, fov choreo.FOVRange) *config.Scene {
	var (
		s   *config.Scene
		err error
	)
	if path == "-" {
		s, err = config.DefaultScene(fov)
	} else {
		s, err = config.LoadScene(path, fov)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fov := fovFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: choreoctl validate <scene>")
		os.Exit(1)
	}

	s := loadScene(fs.Arg(0), *fov)
	fmt.Printf("Scene:     %s\n", s.Name)
	fmt.Printf("Sections:  %d\n", len(s.Sections))
	fmt.Printf("Keyframes: %d (%s)\n", s.ScrollTrack.Len(), easingName(s.ScrollTrack.Easing))
	fmt.Printf("Rooms:     %d\n", len(s.Rooms))
	for _, r := range s.Rooms {
		fmt.Printf("  %-16s %s\n", r.ID, r.Label)
	}
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	steps := fs.Int("steps", 10, "Number of samples")
	viewport := fs.Float64("viewport", 1000, "Viewport height in pixels")
	fov := fovFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: choreoctl sample [-steps N] <scene>")
		os.Exit(1)
	}

	s := loadScene(fs.Arg(0), *fov)
	samples, err := sampleScroll(s, *viewport, *steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	writeYAML(samples)
}

func cmdRooms(args []string) {
	fs := flag.NewFlagSet("rooms", flag.ExitOnError)
	fov := fovFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: choreoctl rooms <scene>")
		os.Exit(1)
	}

	s := loadScene(fs.Arg(0), *fov)
	catalog, err := s.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	writeYAML(catalog.Track(s.Overview))
}

// Sample is one scroll position and the pose shown there.
type Sample struct {
	Offset  float64     `yaml:"offset"`
	Segment int         `yaml:"segment"`
	LocalT  float32     `yaml:"t"`
	Pose    choreo.Pose `yaml:"pose"`
}

// sampleScroll walks the page from top to the last scroll position.
func sampleScroll(s *config.Scene, viewport float64, steps int) ([]Sample, error) {
	if steps < 2 {
		steps = 2
	}
	tracker := scroll.NewTracker(scroll.NewViewportSections(s.Sections, viewport))
	if err := tracker.Measure(); err != nil {
		return nil, err
	}

	end := tracker.DocumentHeight() - viewport
	if end < 0 {
		end = 0
	}
	out := make([]Sample, 0, steps)
	for i := 0; i < steps; i++ {
		offset := end * float64(i) / float64(steps-1)
		p := tracker.ProgressFor(offset)
		out = append(out, Sample{
			Offset:  offset,
			Segment: p.Segment,
			LocalT:  p.LocalT,
			Pose:    tracker.PoseFor(&s.ScrollTrack, offset),
		})
	}
	return out, nil
}

func writeYAML(v any) {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	enc.Close()
}

func easingName(name string) string {
	if name == "" {
		return choreo.DefaultEasingName
	}
	return name
}

// float32Value adapts a float32 to flag.Value.
type float32Value struct{ p *float32 }

func (f float32Value) String() string {
	if f.p == nil {
		return "0"
	}
	return fmt.Sprint(*f.p)
}

func (f float32Value) Set(s string) error {
	var v float32
	if _, err := fmt.Sscan(s, &v); err != nil {
		return err
	}
	*f.p = v
	return nil
}
