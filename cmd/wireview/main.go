package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/wireview/audio"
	"github.com/lixenwraith/wireview/config"
	"github.com/lixenwraith/wireview/engine"
	"github.com/lixenwraith/wireview/input"
	"github.com/lixenwraith/wireview/model"
	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/terminal"
)

// options holds raw flag values; only flags the user set override the config
type options struct {
	configPath string
	fov        float32
	fps        float32
	glyph      string
	color      string
	noOverlay  bool
	fit        bool
	sound      bool
	debug      bool
}

func main() {
	// Panic Recovery: terminal must be usable after a crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mWIREVIEW CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "wireview [model.obj]",
		Short: "Terminal 3D wireframe viewer",
		Long: `wireview - Terminal 3D wireframe viewer

Renders a Wavefront OBJ model, or a built-in cube when no file is given,
as a perspective wireframe of '#' characters.

Controls:
  Up/Down     - Scale up/down
  Left/Right  - Rotate about the vertical axis
  j/k         - Rotate about the horizontal axis
  h/l         - Rotate about the depth axis
  Tab         - Toggle status overlay
  q           - Quit`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &opts)
			if err != nil {
				return report(cmd, err)
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return report(cmd, run(cfg, path))
		},
	}

	bindFlags(cmd, &opts)
	cmd.AddCommand(newInfoCmd())
	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to TOML config file")
	flags.Float32Var(&opts.fov, "fov", parameter.FieldOfView, "Field of view (perspective divisor offset)")
	flags.Float32Var(&opts.fps, "fps", parameter.MaxFrameRate, "Maximum frames per second")
	flags.StringVar(&opts.glyph, "glyph", string(parameter.Glyph), "Character used to draw lines")
	flags.StringVar(&opts.color, "color", "auto", "Color mode: auto, white, mono")
	flags.BoolVar(&opts.noOverlay, "no-overlay", false, "Start with the status overlay hidden")
	flags.BoolVar(&opts.fit, "fit", false, "Center the model and scale it to a fixed radius")
	flags.BoolVar(&opts.sound, "sound", false, "Play feedback clicks")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug log to "+parameter.LogDir+"/"+parameter.LogFileName)
}

// report prints err to the command's error stream; the terminal is already
// released when it reaches here
func report(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "wireview: %v\n", err)
	}
	return err
}

// resolveConfig layers defaults, the optional config file, then explicitly set flags
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fov") {
		cfg.FieldOfView = opts.fov
	}
	if flags.Changed("fps") {
		cfg.MaxFrameRate = opts.fps
	}
	if flags.Changed("glyph") {
		cfg.Glyph = opts.glyph
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
	if flags.Changed("no-overlay") {
		cfg.ShowOverlay = !opts.noOverlay
	}
	if flags.Changed("fit") {
		cfg.Fit = opts.fit
	}
	if flags.Changed("sound") {
		cfg.Sound = opts.sound
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadModel returns the cube for an empty path, otherwise the parsed file
func loadModel(cfg *config.Config, path string) (*model.Model, error) {
	m := model.Cube()
	if path != "" {
		loaded, err := model.Load(path)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	if cfg.Fit {
		m.Fit(cfg.FitRadius)
	}
	return m, nil
}

// buildEngineConfig maps user settings onto the engine
func buildEngineConfig(cfg *config.Config) (engine.Config, error) {
	ecfg := engine.DefaultConfig()
	ecfg.FieldOfView = cfg.FieldOfView
	ecfg.MaxFrameRate = cfg.MaxFrameRate
	ecfg.RotateSpeed = cfg.RotateSpeed
	ecfg.ScaleUp = cfg.ScaleUp
	ecfg.ScaleDown = cfg.ScaleDown
	ecfg.ShowOverlay = cfg.ShowOverlay
	if r, ok := cfg.GlyphRune(); ok {
		ecfg.Glyph = r
	}

	keys := input.DefaultKeyTable()
	if len(cfg.Keys) > 0 {
		if err := keys.ApplyBindings(cfg.Keys); err != nil {
			return ecfg, errors.Wrap(err, "key bindings")
		}
	}
	ecfg.Keys = keys
	return ecfg, nil
}

// run executes a viewer session; every failure before Run leaves the terminal untouched
func run(cfg *config.Config, path string) error {
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	m, err := loadModel(cfg, path)
	if err != nil {
		return err
	}
	log.Printf("model: %d vertices, %d edges", len(m.Vertices), len(m.Edges))

	ecfg, err := buildEngineConfig(cfg)
	if err != nil {
		return err
	}

	if cfg.Sound {
		clicker := audio.NewClicker(parameter.ClickVolume)
		if err := clicker.Initialize(); err != nil {
			log.Printf("audio: %v (continuing without sound)", err)
		} else {
			defer clicker.Close()
			ecfg.OnIntent = clicker.OnIntent
		}
	}

	term, err := terminal.New(cfg.ColorMode())
	if err != nil {
		return err
	}

	e := engine.New(term, ecfg)
	e.SetModel(m)
	return e.Run()
}
