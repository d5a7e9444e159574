package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tluyben/hn-top/decode"
	"github.com/tluyben/hn-top/hn"
	"github.com/tluyben/hn-top/present"
	"github.com/tluyben/hn-top/types"
)

type itemSource interface {
	TopItems(ctx context.Context, limit int) ([]types.Item, error)
	Item(ctx context.Context, id int) (types.Item, error)
}

type server struct {
	items itemSource
	count int
}

// newRouter exposes the summaries read-only
func newRouter(items itemSource, count int) http.Handler {
	s := &server{items: items, count: count}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/top", s.handleTop)
	r.Get("/item/{id}", s.handleItem)
	return r
}

func (s *server) handleTop(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.TopItems(r.Context(), s.count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeText(w, present.Lines(items))
}

func (s *server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := s.items.Item(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeText(w, present.Summary(item))
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, body)
}

// writeError maps upstream failures to 502; anything else is ours
func writeError(w http.ResponseWriter, err error) {
	var terr *hn.TransportError
	_, invalid := decode.AsValidationError(err)
	switch {
	case invalid, errors.As(err, &terr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Printf("Error handling request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serve runs the HTTP view until ctx is done
func serve(ctx context.Context, addr string, items itemSource, count int) error {
	srv := &http.Server{
		Addr:           addr,
		Handler:        newRouter(items, count),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		IdleTimeout:    120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
