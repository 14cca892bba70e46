package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/schema"

	"github.com/blazonapi/blazon"
	"github.com/blazonapi/blazon/blazongen/openapi"
	"github.com/blazonapi/blazon/middleware"
)

type ServeCmd struct {
	Manifest    string `arg:"" help:"Path to the API surface manifest (YAML)." type:"existingfile"`
	Descriptors string `arg:"" help:"Path to the compiled descriptor set (protoc --descriptor_set_out)." type:"existingfile"`
	Port        int    `help:"Port to listen on." default:"8080" short:"p"`
	NoCORS      bool   `help:"Disable permissive CORS headers." name:"no-cors"`
}

// renderOptions are the query options accepted by the description endpoints.
type renderOptions struct {
	Pretty bool `schema:"pretty"`
}

// apiMux returns the route table of the description server. The generator
// memoizes its build, so concurrent requests share one document.
func apiMux(gen *openapi.Generator, logger *slog.Logger) *http.ServeMux {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		var opts renderOptions
		if err := decoder.Decode(&opts, r.URL.Query()); err != nil {
			blazon.WriteError(w, blazon.Errorf(blazon.CodeInvalidArgument, "bad query: %v", err), logger)
			return
		}
		out, err := gen.JSON()
		if err != nil {
			blazon.WriteError(w, blazon.Errorf(blazon.CodeInternal, "building description: %v", err), logger)
			return
		}
		if opts.Pretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err == nil {
				out = buf.Bytes()
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
	})

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		out, err := gen.YAML()
		if err != nil {
			blazon.WriteError(w, blazon.Errorf(blazon.CodeInternal, "building description: %v", err), logger)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(out)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/openapi.json", http.StatusFound)
	})

	return mux
}

func (c *ServeCmd) Run() error {
	gen, err := buildGenerator(c.Manifest, c.Descriptors)
	if err != nil {
		return err
	}
	// Build once up front so a broken surface fails at startup instead of
	// on the first request.
	if _, err := gen.JSON(); err != nil {
		return err
	}

	logger := slog.Default()
	for _, w := range gen.Warnings() {
		logger.Warn("generator warning", slog.String("detail", w))
	}

	var handler http.Handler = apiMux(gen, logger)
	if !c.NoCORS {
		handler = middleware.CORS(middleware.CORSAllowAll)(handler)
	}
	handler = middleware.Logging(logger)(handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving api description", slog.Int("port", c.Port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
