package benchplot

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/charts"
)

// ReportHTTPOption configures the report HTTP server.
type ReportHTTPOption func(*ReportHTTPServer)

// ReportHTTPServer holds Fiber app and settings.
type ReportHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	ln           net.Listener
	started      bool
}

// WithReportAuth sets an auth function (return error to block).
func WithReportAuth(fn func(fiber.Ctx) error) ReportHTTPOption {
	return func(s *ReportHTTPServer) { s.authFunc = fn }
}

// WithReportReadTimeout sets read timeout.
func WithReportReadTimeout(d time.Duration) ReportHTTPOption {
	return func(s *ReportHTTPServer) { s.readTimeout = d }
}

// WithReportWriteTimeout sets write timeout.
func WithReportWriteTimeout(d time.Duration) ReportHTTPOption {
	return func(s *ReportHTTPServer) { s.writeTimeout = d }
}

const (
	defaultReportReadTimeout  = 5 * time.Second
	defaultReportWriteTimeout = 5 * time.Second
)

// NewReportHTTPServer builds an HTTP server holder (lazy start).
func NewReportHTTPServer(addr string, opts ...ReportHTTPOption) *ReportHTTPServer {
	srv := &ReportHTTPServer{
		addr:         addr,
		readTimeout:  defaultReportReadTimeout,
		writeTimeout: defaultReportWriteTimeout,
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	srv.app = fiber.New(fiber.Config{
		ReadTimeout:  srv.readTimeout,
		WriteTimeout: srv.writeTimeout,
	})

	return srv
}

// reportSource is the plotter surface the report endpoints read from.
type reportSource interface {
	OutputDir() string
	EngineKind() string
	Debug() bool
	IncrementalRenders() bool
	Workers() int
	Settings() charts.Settings
}

// Start launches listener (idempotent). Caller provides the plotter for
// handler wiring.
func (s *ReportHTTPServer) Start(ctx context.Context, source reportSource) error {
	if s.started { // idempotent
		return nil
	}

	s.mountRoutes(source)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "report listen")
	}

	s.ln = ln

	go func() { // serve in background (optional server errors are ignored intentionally)
		err = s.app.Listener(ln)
		if err != nil { // optional server; log hook could be added in future
			_ = err
		}
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ReportHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ReportHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrReportHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

// chartEntry is one rendered artifact in the /charts inventory.
type chartEntry struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func (s *ReportHTTPServer) mountRoutes(source reportSource) {
	useAuth := s.wrapAuth

	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))

	s.app.Get("/charts", useAuth(func(fiberCtx fiber.Ctx) error {
		inventory, err := chartInventory(source.OutputDir())
		if err != nil {
			return fiberCtx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return fiberCtx.JSON(inventory)
	}))

	s.app.Get("/charts/file", useAuth(func(fiberCtx fiber.Ctx) error {
		requested := fiberCtx.Query("path")
		if requested == "" {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing path"})
		}

		full, err := resolveArtifactPath(source.OutputDir(), requested)
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		data, err := os.ReadFile(full)
		if err != nil {
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artifact not found"})
		}

		ext := strings.TrimPrefix(filepath.Ext(full), ".")
		if ext != "" {
			fiberCtx.Type(ext)
		}

		return fiberCtx.Send(data)
	}))

	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		settings := source.Settings()
		cfg := map[string]any{
			"engine":             source.EngineKind(),
			"outputDir":          source.OutputDir(),
			"debug":              source.Debug(),
			"incrementalRenders": source.IncrementalRenders(),
			"workers":            source.Workers(),
			"settings": map[string]any{
				"font":      settings.Font,
				"width":     settings.Size.Width,
				"height":    settings.Size.Height,
				"lineWidth": settings.LineWidth,
				"pointSize": settings.PointSize,
				"kdePoints": settings.KDEPoints,
			},
		}

		return fiberCtx.JSON(cfg)
	}))
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ReportHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

// isChartArtifact reports whether the file is a rendered chart or a chart
// script written by the script engine.
func isChartArtifact(path string) bool {
	switch filepath.Ext(path) {
	case ".svg", ".png", ".plt":
		return true
	default:
		return false
	}
}

// chartInventory walks the output directory and lists the rendered artifacts.
// A missing output directory yields an empty inventory, not an error.
func chartInventory(outputDir string) ([]chartEntry, error) {
	inventory := make([]chartEntry, 0)

	err := filepath.WalkDir(outputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !isChartArtifact(path) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}

		inventory = append(inventory, chartEntry{Path: rel, Size: info.Size(), Modified: info.ModTime()})

		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return inventory, nil // nothing rendered yet
		}

		return nil, ewrap.Wrap(err, "walking output directory")
	}

	return inventory, nil
}

// resolveArtifactPath joins the requested relative path with the output
// directory, rejecting absolute paths and any traversal outside it.
func resolveArtifactPath(outputDir, requested string) (string, error) {
	cleaned := filepath.Clean(requested)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", sentinel.ErrPathOutsideOutputDir
	}

	return filepath.Join(outputDir, cleaned), nil
}
