// drowsy - EAR-based drowsiness monitor
//
// Watches a webcam (or a recorded landmark feed), classifies each frame as
// ALERT, DROWSY or NO_FACE and serves the result on a live dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-drowsy/internal/config"
	"github.com/teslashibe/go-drowsy/internal/log"
	"github.com/teslashibe/go-drowsy/pkg/camera"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
	"github.com/teslashibe/go-drowsy/pkg/landmarks"
	"github.com/teslashibe/go-drowsy/pkg/metrics"
	"github.com/teslashibe/go-drowsy/pkg/monitor"
	"github.com/teslashibe/go-drowsy/pkg/web"
)

// options holds parsed command line configuration.
type options struct {
	detector drowsiness.Config
	camera   camera.Config
	meshURL  string
	replay   string
	record   string
	webPort  string
	logLevel string
	logFile  string
	noWeb    bool
}

func main() {
	config.LoadDotEnv()
	opts := parseFlags()

	log.InitWithOptions(log.Options{Level: opts.logLevel, File: opts.logFile})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Error("drowsy exited", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags with environment defaults.
func parseFlags() options {
	def := drowsiness.DefaultConfig()
	cam := camera.DefaultConfig()

	threshold := flag.Float64("threshold", config.Float(config.EnvEARThreshold, def.EARThreshold), "EAR below which eyes count as closed")
	drowsyTime := flag.Duration("drowsy-time", config.Duration(config.EnvDrowsyTime, def.DrowsyTime), "How long eyes must stay closed before DROWSY")
	fps := flag.Float64("fps", config.Float(config.EnvFPS, 0), "Declared capture rate (default: camera framerate, or 30 for replays)")
	device := flag.Int("camera", config.Int(config.EnvCamera, cam.DeviceID), "Webcam device index")
	width := flag.Int("width", config.Int(config.EnvCameraWidth, cam.Width), "Capture width")
	height := flag.Int("height", config.Int(config.EnvCameraHeight, cam.Height), "Capture height")
	preset := flag.String("preset", "", "Camera preset: "+fmt.Sprint(camera.PresetNames()))
	meshURL := flag.String("mesh-url", config.String(config.EnvFaceMeshURL, landmarks.DefaultConfig().URL), "Face-mesh service websocket URL")
	replay := flag.String("replay", "", "Replay a recorded landmark feed (JSON lines) instead of the camera")
	record := flag.String("record", "", "Record the landmark feed to this file")
	webPort := flag.String("web", config.String(config.EnvWebPort, "8080"), "Dashboard port")
	noWeb := flag.Bool("no-web", false, "Disable the dashboard")
	logLevel := flag.String("log-level", config.String(config.EnvLogLevel, "info"), "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", config.String(config.EnvLogFile, ""), "Also write logs to this rotated file")
	debug := flag.Bool("debug", false, "Shorthand for -log-level=debug")
	flag.Parse()

	if *preset != "" {
		p, ok := camera.Preset(*preset)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown camera preset %q\n", *preset)
			os.Exit(2)
		}
		cam = p
	} else {
		cam.Width, cam.Height = *width, *height
	}
	cam.DeviceID = *device

	det := drowsiness.Config{
		EARThreshold: *threshold,
		DrowsyTime:   *drowsyTime,
		FPS:          declaredFPS(*fps, *replay != "", cam),
	}

	level := *logLevel
	if *debug {
		level = "debug"
	}

	return options{
		detector: det,
		camera:   cam,
		meshURL:  *meshURL,
		replay:   *replay,
		record:   *record,
		webPort:  *webPort,
		logLevel: level,
		logFile:  *logFile,
		noWeb:    *noWeb,
	}
}

// declaredFPS is the rate the streak length is computed from. An explicit
// -fps wins; otherwise the camera's framerate, or the default for replays.
// The camera keeps its own capture rate either way.
func declaredFPS(flagFPS float64, replaying bool, cam camera.Config) float64 {
	if flagFPS > 0 {
		return flagFPS
	}
	if replaying {
		return drowsiness.DefaultConfig().FPS
	}
	return float64(cam.Framerate)
}

func run(ctx context.Context, opts options) error {
	session, err := drowsiness.NewSession(opts.detector)
	if err != nil {
		return err
	}

	source, annotator, closeSource, err := openSource(opts)
	if err != nil {
		return err
	}
	defer closeSource()

	if opts.record != "" {
		rec, err := landmarks.CreateRecorder(opts.record)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Warn("recording not flushed", "error", err)
			}
			log.Info("recording saved", "path", opts.record, "frames", rec.Frames())
		}()
		source = monitor.NewRecordingSource(source, rec)
	}

	m := metrics.New()
	mopts := monitor.DefaultOptions()
	mopts.Observer = m
	mopts.Annotator = annotator

	// The server needs the monitor, so it is attached after construction.
	pub := &lateBound{}
	if !opts.noWeb {
		mopts.Publishers = append(mopts.Publishers, pub)
	}
	mon := monitor.New(source, session, mopts)

	if !opts.noWeb {
		srv := web.NewServer(opts.webPort, mon, m.Handler())
		pub.server = srv
		srv.StartAsync(ctx)
	}

	start := time.Now()
	err = mon.Run(ctx)

	st := mon.Stats()
	log.Info("session finished",
		"session", st.Session.ID,
		"frames", st.Frames,
		"drowsy_episodes", st.Session.DrowsyEpisodes,
		"source_errors", st.SourceErrors,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openSource picks the replay file or the live camera pipeline.
func openSource(opts options) (monitor.Source, monitor.Annotator, func(), error) {
	if opts.replay != "" {
		replay, err := landmarks.OpenReplay(opts.replay)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("replaying landmark feed", "path", opts.replay)
		return replay, nil, func() { replay.Close() }, nil
	}

	capture, err := camera.Open(opts.camera)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg := landmarks.DefaultConfig()
	cfg.URL = opts.meshURL
	// A frame that cannot be answered within two frame periods is stale.
	cfg.Timeout = time.Duration(2 * float64(time.Second) / opts.detector.FPS)
	if cfg.Timeout < 100*time.Millisecond {
		cfg.Timeout = 100 * time.Millisecond
	}
	detector, err := landmarks.NewRemote(cfg)
	if err != nil {
		capture.Close()
		return nil, nil, nil, err
	}

	closeAll := func() {
		detector.Close()
		capture.Close()
	}
	return monitor.NewDetectingSource(capture, detector), camera.NewOverlay(opts.camera.Quality), closeAll, nil
}

// lateBound forwards to the dashboard once it exists.
type lateBound struct {
	server *web.Server
}

func (l *lateBound) Publish(c drowsiness.Classification) {
	if l.server != nil {
		l.server.Publish(c)
	}
}

func (l *lateBound) PublishFrame(jpeg []byte) {
	if l.server != nil {
		l.server.PublishFrame(jpeg)
	}
}
