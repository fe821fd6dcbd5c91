package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ProgressUpdate reports finished blocks while a render runs
type ProgressUpdate struct {
	BlocksDone  int   `json:"blocksDone"`
	TotalBlocks int   `json:"totalBlocks"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// FrameUpdate carries the finished image and its statistics
type FrameUpdate struct {
	RenderID         string  `json:"renderId"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	TotalSamples     int     `json:"totalSamples"`
	Blocks           int     `json:"blocks"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// handleRender renders a scene and streams console output, block progress and the
// finished frame via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// A single writer goroutine owns w
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	// Every sender is finished before the channels close
	defer func() {
		close(consoleChan)
		consoleWG.Wait()
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	if err := s.parseRenderRequest(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	pipeline.Raytracer.SetBlockCallback(func(done, total int) {
		s.handleBlockProgress(ctx, sseEventChan, done, total, startTime)
	})

	frame, stats, err := pipeline.Raytracer.Render(ctx)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleFrameComplete(ctx, sseEventChan, frame, stats, pipeline.Scene)

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(uuid.NewString(), consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output to the SSE channel until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	config := renderer.ConfigForScene(sceneObj)
	if req.Ambient >= 0 {
		config.Params.Ambient = float32(req.Ambient)
	}
	if req.Diffuse >= 0 {
		config.Params.Diffuse = float32(req.Diffuse)
	}
	if req.Specular >= 0 {
		config.Params.Specular = float32(req.Specular)
	}
	if req.Reflection >= 0 {
		config.Params.Reflection = float32(req.Reflection)
	}
	if req.MaxDepth >= 0 {
		config.Params.MaxDepth = req.MaxDepth
	}
	if req.AntiAliasing != nil {
		config.AntiAliasing = *req.AntiAliasing
	}

	logger.Printf("Scene %s: %d primitives, %d lights\n", sceneObj.Name, sceneObj.PrimitiveCount(), len(sceneObj.Lights))

	raytracer, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, err
	}
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
	}, nil
}

// handleBlockProgress sends a progress event. Updates are dropped when the client lags.
func (s *Server) handleBlockProgress(ctx context.Context, sseEventChan chan SSEEvent, done, total int, startTime time.Time) {
	data, err := json.Marshal(ProgressUpdate{
		BlocksDone:  done,
		TotalBlocks: total,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		log.Printf("Error marshaling progress update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-ctx.Done():
	default:
	}
}

// handleFrameComplete encodes the finished frame and sends it with the render statistics
func (s *Server) handleFrameComplete(ctx context.Context, sseEventChan chan SSEEvent, frame *renderer.Frame, stats renderer.RenderStats, sceneObj *scene.Scene) {
	imageData, err := s.imageToBase64PNG(frame.ToRGBA())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(FrameUpdate{
		RenderID:         stats.RenderID,
		Width:            frame.Width,
		Height:           frame.Height,
		ImageData:        imageData,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
		TotalPixels:      stats.TotalPixels,
		SamplesPerPixel:  stats.SamplesPerPixel,
		TotalSamples:     stats.TotalSamples,
		Blocks:           stats.Blocks,
		Workers:          stats.Workers,
		AverageLuminance: stats.AverageLuminance,
		PrimitiveCount:   sceneObj.PrimitiveCount(),
	})
	if err != nil {
		log.Printf("Error marshaling frame update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses the scene, resolution and shading parameters
func (s *Server) parseRenderRequest(r *http.Request, req *RenderRequest) error {
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return err
	}
	if err := s.parseShadingParams(r, req); err != nil {
		return err
	}

	// Performance warning
	if req.Width*req.Height > 1000*1000 && req.MaxDepth > 8 {
		log.Printf("Render warning: Large image with deep reflections may render slowly")
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
