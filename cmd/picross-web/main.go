package main

import (
	"context"
	"errors"
	"flag"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	httpadapter "svw.info/picross/internal/adapters/http"
	"svw.info/picross/internal/generator"
	"svw.info/picross/internal/infrastructure/storage"
	"svw.info/picross/internal/ports"
	"svw.info/picross/internal/rules"
	"svw.info/picross/internal/tally"
	"svw.info/picross/internal/usecase"
	"svw.info/picross/web"
)

var log = logrus.New()

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	columns := flag.Int("columns", 10, "default puzzle columns")
	rows := flag.Int("rows", 10, "default puzzle rows")
	cellSize := flag.Int("cell-size", 32, "renderer cell size in px")
	assist := flag.Bool("assist", false, "enable assist mode for new puzzles")
	lockRevealed := flag.Bool("lock-revealed", true, "make revealed pieces unclickable")
	revealProb := flag.Float64("reveal-probability", generator.DefaultRevealProbability,
		"per-piece hide threshold; pieces are revealed when a uniform draw exceeds it")
	flag.Parse()

	if lvl, err := logrus.ParseLevel(*levelStr); err == nil {
		log.SetLevel(lvl)
	}
	_ = os.MkdirAll(*persist, 0o755)

	// Wire providers -> use cases -> HTTP adapter
	g := &generator.RandomGenerator{RevealProbability: *revealProb}
	t := tally.New()
	st := storage.NewFS(*persist)
	rf := func(assistEnabled, revealedLocked bool) ports.Rules {
		return rules.New(rules.Config{AssistEnabled: assistEnabled, RevealedLocked: revealedLocked})
	}
	uc := usecase.NewService(g, t, rf, st)
	h := httpadapter.New(uc)
	h.Columns = *columns
	h.Rows = *rows
	h.Assist = *assist
	h.LockRevealed = *lockRevealed

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := map[string]any{"CellSize": *cellSize}
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr": *addr, "persist": *persist,
			"columns": *columns, "rows": *rows,
		}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	if err := grp.Wait(); err != nil {
		log.WithError(err).Error("server error")
		os.Exit(1)
	}
}
