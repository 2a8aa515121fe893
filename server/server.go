// Package server serves the shader assets over HTTP so the canvas, or a
// browser, can load the fragment shader from its fixed path.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Handler returns the routes for assets: every file under assets/shader is
// served at /shader/<name> as plain text.
func Handler(assets fs.FS) (http.Handler, error) {
	shaders, err := fs.Sub(assets, "shader")
	if err != nil {
		return nil, err
	}

	router := httprouter.New()
	router.GET("/shader/*filepath", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		name := ps.ByName("filepath")
		if len(name) > 0 && name[0] == '/' {
			name = name[1:]
		}
		data, err := fs.ReadFile(shaders, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
				http.NotFound(w, r)
				return
			}
			log.Printf("Failed to read %s: %v", name, err)
			http.Error(w, "failed to read shader", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	})
	router.GET("/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(router), nil
}

// Serve listens on addr and serves assets until ctx is cancelled.
func Serve(ctx context.Context, addr string, assets fs.FS) error {
	handler, err := Handler(assets)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving shaders on http://%s/shader/", listener.Addr())
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
