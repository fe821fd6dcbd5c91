package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line. Negative shading values and zero sizes mean
// "use the scene's setting".
type options struct {
	sceneName  string
	width      int
	height     int
	ambient    float64
	diffuse    float64
	specular   float64
	reflection float64
	depth      int
	aa         string
	workers    int
	blockSize  int
	output     string
	label      bool
	help       bool
}

func parseOptions(args []string, out io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene: built-in ID, json:<name>, or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.Float64Var(&opts.ambient, "ambient", -1, "Ambient coefficient (negative = scene default)")
	fs.Float64Var(&opts.diffuse, "diffuse", -1, "Diffuse coefficient (negative = scene default)")
	fs.Float64Var(&opts.specular, "specular", -1, "Specular coefficient (negative = scene default)")
	fs.Float64Var(&opts.reflection, "reflection", -1, "Reflection coefficient (negative = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Reflection bounces (negative = scene default)")
	fs.StringVar(&opts.aa, "aa", "", "Anti-aliasing: 'on' or 'off' (empty = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Concurrent blocks (0 = CPU count)")
	fs.IntVar(&opts.blockSize, "block", 0, "Block side in pixels (0 = 16)")
	fs.StringVar(&opts.output, "o", "", "Output file (.png, .bmp or .tiff); default output/<scene>/render_<timestamp>.png")
	fs.BoolVar(&opts.label, "label", false, "Draw the scene name and render stats onto the image")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if fs.NArg() > 0 {
		return opts, fs, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, fs, nil
}

func printHelp(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Whitted Raytracer")
	fmt.Fprintln(out, "Usage: raytracer [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(out, "  %-15s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(out, "  json:<name>     - Scene file scenes/<name>.json")
	fmt.Fprintln(out, "  <path>.json     - Any scene file")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene builds the named scene with optional resolution overrides
func createScene(name string, width, height int) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}
	return scene.Create(name, geometry.CameraConfig{Width: width, Height: height})
}

// createOutputDir returns the per-scene output directory
func createOutputDir(sceneName string) string {
	base := sceneName
	if strings.HasSuffix(base, ".json") {
		base = strings.TrimSuffix(filepath.Base(base), ".json")
	}
	base = strings.TrimPrefix(base, "json:")
	if base == "" {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// renderConfig applies command line overrides on top of the scene's settings
func renderConfig(s *scene.Scene, opts options) (renderer.RenderConfig, error) {
	config := renderer.ConfigForScene(s)
	if opts.ambient >= 0 {
		config.Params.Ambient = float32(opts.ambient)
	}
	if opts.diffuse >= 0 {
		config.Params.Diffuse = float32(opts.diffuse)
	}
	if opts.specular >= 0 {
		config.Params.Specular = float32(opts.specular)
	}
	if opts.reflection >= 0 {
		config.Params.Reflection = float32(opts.reflection)
	}
	if opts.depth >= 0 {
		config.Params.MaxDepth = opts.depth
	}
	switch strings.ToLower(opts.aa) {
	case "":
	case "on", "true", "1":
		config.AntiAliasing = true
	case "off", "false", "0":
		config.AntiAliasing = false
	default:
		return config, fmt.Errorf("invalid -aa value %q (use on or off)", opts.aa)
	}
	config.NumWorkers = opts.workers
	if opts.blockSize > 0 {
		config.BlockSize = opts.blockSize
	}
	return config, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, fs, err := parseOptions(args, out)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.help {
		printHelp(out, fs)
		return nil
	}

	fmt.Fprintln(out, "Starting Whitted Raytracer...")

	selectedScene, err := createScene(opts.sceneName, opts.width, opts.height)
	if err != nil {
		return err
	}
	config, err := renderConfig(selectedScene, opts)
	if err != nil {
		return err
	}

	cam := selectedScene.Camera.Config()
	fmt.Fprintf(out, "Using scene %s (%dx%d, %d primitives, %d lights)\n",
		selectedScene.Name, cam.Width, cam.Height, selectedScene.PrimitiveCount(), len(selectedScene.Lights))

	rt, err := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	frame, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Render completed: %s\n", stats)

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(createOutputDir(opts.sceneName), fmt.Sprintf("render_%s.png", timestamp))
	}

	if opts.label {
		img := imageio.Annotate(frame.ToRGBA(),
			selectedScene.Name,
			fmt.Sprintf("%d spp, depth %d, %v", stats.SamplesPerPixel, config.Params.MaxDepth, stats.Elapsed.Round(time.Millisecond)))
		err = imageio.WriteImage(filename, img)
	} else {
		err = imageio.WriteFrame(filename, frame)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Render saved as %s\n", filename)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
