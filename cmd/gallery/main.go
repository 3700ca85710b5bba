package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-gallery/engine"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/Carmen-Shannon/oxy-gallery/gallery"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	manifest   string
	imageDir   string
	width      int
	height     int
	profile    bool
	uncapped   bool
	msaa       bool
	software   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Show a tumbling sphere of images you can orbit and zoom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "JSON file overriding the default tunables")
	flags.StringVarP(&opts.manifest, "manifest", "m", "images.json", "URL or path of the JSON list of image names")
	flags.StringVar(&opts.imageDir, "images", "images", "directory image names resolve in, relative to the manifest")
	flags.IntVar(&opts.width, "width", 1280, "initial window width")
	flags.IntVar(&opts.height, "height", 720, "initial window height")
	flags.BoolVar(&opts.profile, "profile", false, "log FPS and heap usage periodically")
	flags.BoolVar(&opts.uncapped, "uncapped", false, "present without waiting for vertical blank")
	flags.BoolVar(&opts.msaa, "msaa", true, "enable 4x multisample anti-aliasing")
	flags.BoolVar(&opts.software, "software", false, "force a software GPU adapter")
	return cmd
}

// buildConfig layers the config file over the defaults, then explicit flags over both.
func buildConfig(cmd *cobra.Command, opts *options) (gallery.Config, error) {
	cfg := gallery.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := gallery.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if opts.configPath == "" || cmd.Flags().Changed("manifest") {
		cfg.Manifest = opts.manifest
	}
	if opts.configPath == "" || cmd.Flags().Changed("images") {
		cfg.ImageDir = opts.imageDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cfg gallery.Config, opts *options) error {
	logger := log.Default()

	win := window.NewWindow(
		window.WithTitle("Oxy Gallery"),
		window.WithSize(opts.width, opts.height),
	)
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(opts.profile),
		engine.WithLogger(logger),
	)

	presentMode := renderer.PresentModeVSync
	if opts.uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if opts.msaa {
		msaa = renderer.MSAA4x
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(opts.software),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	app, err := gallery.New(cfg, r, eng,
		gallery.WithLogger(logger),
		gallery.WithSize(win.Width(), win.Height()),
		gallery.WithPixelRatio(win.PixelRatio()),
	)
	if err != nil {
		return err
	}
	defer app.Close()
	eng.BindInput(app)
	eng.AddProfilerSource("planes", func() float64 { return float64(app.Scene().Group().Len()) })
	eng.AddProfilerSource("frames", func() float64 { return float64(app.Frames()) })

	app.Load()
	app.Start()
	eng.Run()
	app.Stop()
	return nil
}
