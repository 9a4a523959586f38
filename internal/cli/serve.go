package cli

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/fgb"
)

func (a *app) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored features over HTTP",
		Long: `Serve the stored features over HTTP:

  GET /data.fgb               every feature as FlatGeobuf
  GET /features.geojson       every feature as GeoJSON
  GET /geometries/{id}        geometry in text form, ?format=wkb for WKB`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{Addr: addr, Handler: a.handler(), ReadHeaderTimeout: 10 * time.Second}
		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		a.log.WithField("addr", addr).Info("serving")

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return cmd
}

// handler routes the read-only endpoints, one request at a time.
func (a *app) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data.fgb", a.serveFlatGeobuf)
	mux.HandleFunc("GET /features.geojson", a.serveGeoJSON)
	mux.HandleFunc("GET /geometries/{id}", a.serveGeometry)
	return cors(a.serial(mux))
}

func (a *app) serial(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func (a *app) serveFlatGeobuf(w http.ResponseWriter, r *http.Request) {
	fc, err := a.collection()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	opts := fgb.DefaultOptions()
	opts.ReferenceSystem = a.features.Geometries().ReferenceSystem()
	var buf bytes.Buffer
	if err := fgb.WriteFeatures(&buf, fc, opts); err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(buf.Bytes())
}

func (a *app) serveGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := a.collection()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		a.log.WithError(err).Warn("writing response")
	}
}

func (a *app) serveGeometry(w http.ResponseWriter, r *http.Request) {
	g, err := a.features.Geometries().GeometryAt(r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "wkb" {
		b, err := geometry.MarshalWKB(g, binary.LittleEndian)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(b)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(geometry.Text(g) + "\n"))
}

func (a *app) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, driver.ErrIdentifierNotFound), errors.Is(err, driver.ErrPathNotFound):
		status = http.StatusNotFound
	case errors.Is(err, geometry.ErrArgumentNull):
		status = http.StatusBadRequest
	}
	a.log.WithError(err).WithField("path", r.URL.Path).Warn("request failed")
	http.Error(w, err.Error(), status)
}
