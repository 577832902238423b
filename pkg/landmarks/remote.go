package landmarks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teslashibe/go-drowsy/internal/log"
)

// RemoteDetector sends JPEG frames to a face-mesh service over a websocket and
// reads back one JSON Result per frame. Requests are serialized so responses
// stay paired with their frames.
type RemoteDetector struct {
	config Config
	dialer *websocket.Dialer

	mu     sync.Mutex // Protects conn and request/response pairing
	conn   *websocket.Conn
	closed bool
}

// NewRemote creates a detector for the service at cfg.URL.
// The connection is established on first use and re-dialed after failures.
func NewRemote(cfg Config) (*RemoteDetector, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("landmarks: face-mesh URL required")
	}
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = def.DialTimeout
	}
	if cfg.MaxFrameSize <= 0 {
		cfg.MaxFrameSize = def.MaxFrameSize
	}
	return &RemoteDetector{
		config: cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.DialTimeout},
	}, nil
}

// Detect sends one frame and waits for its result.
func (d *RemoteDetector) Detect(ctx context.Context, frame Frame) (Result, error) {
	if len(frame.JPEG) == 0 {
		return Result{}, ErrEmptyFrame
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return Result{}, ErrDetectorClosed
	}
	conn, err := d.connect(ctx)
	if err != nil {
		return Result{}, err
	}

	deadline := time.Now().Add(d.config.Timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	conn.SetWriteDeadline(deadline)
	conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.BinaryMessage, frame.JPEG); err != nil {
		d.drop()
		return Result{}, fmt.Errorf("send frame: %w", err)
	}

	var res Result
	if err := conn.ReadJSON(&res); err != nil {
		d.drop()
		return Result{}, fmt.Errorf("read result: %w", err)
	}

	if res.Width == 0 && res.Height == 0 {
		res.Width, res.Height = frame.Width, frame.Height
	}
	res.Image = frame.JPEG
	return res, nil
}

// connect returns the live connection, dialing if needed. Caller holds mu.
func (d *RemoteDetector) connect(ctx context.Context) (*websocket.Conn, error) {
	if d.conn != nil {
		return d.conn, nil
	}
	conn, _, err := d.dialer.DialContext(ctx, d.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial face-mesh service: %w", err)
	}
	conn.SetReadLimit(d.config.MaxFrameSize)
	log.Info("face-mesh service connected", "url", d.config.URL)
	d.conn = conn
	return conn, nil
}

// drop discards a broken connection. Caller holds mu.
func (d *RemoteDetector) drop() {
	if d.conn == nil {
		return
	}
	d.conn.Close()
	d.conn = nil
	log.Warn("face-mesh connection dropped", "url", d.config.URL)
}

// Close closes the connection. Further Detect calls fail with ErrDetectorClosed.
func (d *RemoteDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.conn == nil {
		return nil
	}
	d.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := d.conn.Close()
	d.conn = nil
	return err
}
