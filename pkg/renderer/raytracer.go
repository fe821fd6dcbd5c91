package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for a render
type RenderConfig struct {
	Params       integrator.Params
	AntiAliasing bool // 2x2 stratified samples per pixel
	NumWorkers   int  // Concurrent blocks (0 = use CPU count)
	BlockSize    int  // Pixel threads per block side
}

// DefaultRenderConfig returns the default render settings
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Params:       integrator.DefaultParams(),
		AntiAliasing: true,
		NumWorkers:   0,
		BlockSize:    16,
	}
}

// ConfigForScene returns the default config with the scene's shading settings
func ConfigForScene(s *scene.Scene) RenderConfig {
	sc := s.SamplingConfig
	config := DefaultRenderConfig()
	config.Params = integrator.Params{
		Ambient:    sc.Ambient,
		Diffuse:    sc.Diffuse,
		Specular:   sc.Specular,
		Shininess:  sc.Shininess,
		Reflection: sc.Reflection,
		MaxDepth:   sc.MaxDepth,
	}
	config.AntiAliasing = sc.AntiAliasing
	return config
}

// Raytracer dispatches one integrator call per pixel across blocks of the image
type Raytracer struct {
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
	onBlock    func(done, total int)
}

// NewRaytracer packs the scene and creates a Whitted raytracer for it
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	sb, err := s.Buffers()
	if err != nil {
		return nil, err
	}
	return NewRaytracerWithIntegrator(s.Camera, integrator.NewWhitted(sb, config.Params), config, logger), nil
}

// NewRaytracerWithIntegrator creates a raytracer around any integrator
func NewRaytracerWithIntegrator(camera *geometry.Camera, integ integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if config.BlockSize <= 0 {
		config.BlockSize = DefaultRenderConfig().BlockSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// SetBlockCallback registers fn to be called after each finished block. It may be called
// from several goroutines at once.
func (rt *Raytracer) SetBlockCallback(fn func(done, total int)) {
	rt.onBlock = fn
}

// Config returns the effective configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render traces every pixel and blocks until all blocks finish. The first block error or
// panic fails the whole render and no frame is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	camConfig := rt.camera.Config()
	width, height := camConfig.Width, camConfig.Height

	samplesPerAxis := 1
	if rt.config.AntiAliasing {
		samplesPerAxis = 2
	}
	spp := samplesPerAxis * samplesPerAxis

	blocks := NewBlockGrid(width, height, rt.config.BlockSize)
	stats := RenderStats{
		RenderID:        uuid.NewString(),
		TotalPixels:     width * height,
		SamplesPerPixel: spp,
		TotalSamples:    width * height * spp,
		Blocks:          len(blocks),
		BlockSize:       rt.config.BlockSize,
		Workers:         rt.config.NumWorkers,
	}

	rt.logger.Printf("Render %s: %dx%d, %d samples/pixel, %d blocks on %d workers\n",
		stats.RenderID, width, height, spp, len(blocks), rt.config.NumWorkers)

	dirs := rt.camera.GeneratePixelDirections(samplesPerAxis)
	frame := NewFrame(width, height)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.config.NumWorkers)

	for _, block := range blocks {
		block := block
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("block %d %v: panic: %v", block.ID, block.Bounds, r)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			rt.renderBlock(block, dirs, spp, frame)
			if rt.onBlock != nil {
				rt.onBlock(int(done.Add(1)), len(blocks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stats.Elapsed = time.Since(start)
		rt.logger.Printf("Render %s failed after %v: %v\n", stats.RenderID, stats.Elapsed, err)
		return nil, stats, fmt.Errorf("render %s: %w", stats.RenderID, err)
	}

	stats.Elapsed = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(frame)
	rt.logger.Printf("Render %s completed: %s\n", stats.RenderID, stats)
	return frame, stats, nil
}

// renderBlock runs every thread of the block. Each in-image thread writes only its own pixel.
func (rt *Raytracer) renderBlock(block Block, dirs []core.Vec3, spp int, frame *Frame) {
	origin := rt.camera.Origin()
	for row := block.Bounds.Min.Y; row < block.Bounds.Max.Y; row++ {
		for col := block.Bounds.Min.X; col < block.Bounds.Max.X; col++ {
			if row >= frame.Height || col >= frame.Width {
				continue
			}
			k := (row*frame.Width + col) * spp
			frame.Set(row, col, rt.integrator.SamplePixel(origin, dirs[k:k+spp]))
		}
	}
}
