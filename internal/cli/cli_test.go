package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/fgb"
	"github.com/tingold/orb-geometry/stored"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(&out, &errOut)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func layer(t *testing.T) []string {
	return []string{"--driver", "fgb", "--param", "path=" + filepath.Join(t.TempDir(), "layer.fgb")}
}

func TestCreateListShowDelete(t *testing.T) {
	flags := layer(t)
	run := func(args ...string) string {
		t.Helper()
		out, err := execute(t, append(args, flags...)...)
		require.NoError(t, err)
		return out
	}

	id := run("create", "POINT (1 2 3)", "--attr", "name=home")
	require.NotEmpty(t, id)
	other := run("create", "POLYGON ((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0))")

	list := run("list")
	require.Contains(t, list, id)
	require.Contains(t, list, other)
	require.Contains(t, list, "Polygon")

	require.Equal(t, "POINT (1 2 3)", run("show", id))
	require.NotEmpty(t, run("show", id, "--format", "wkb"))

	gf, err := geojson.UnmarshalFeature([]byte(run("show", id, "--format", "geojson")))
	require.NoError(t, err)
	require.Equal(t, "home", gf.Properties["name"])

	run("delete", id)
	list = run("list")
	require.NotContains(t, list, id)
	require.Contains(t, list, other)

	_, err = execute(t, append([]string{"show", id}, flags...)...)
	require.True(t, errors.Is(err, driver.ErrIdentifierNotFound))
}

func TestExportImport(t *testing.T) {
	src := layer(t)
	_, err := execute(t, append([]string{"create", "LINESTRING (0 0 0,3 4 0)", "--attr", "name=road"}, src...)...)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out.geojson", "out.fgb"} {
		path := filepath.Join(dir, name)
		_, err := execute(t, append([]string{"export", path}, src...)...)
		require.NoError(t, err)

		dst := layer(t)
		ids, err := execute(t, append([]string{"import", path}, dst...)...)
		require.NoError(t, err)
		require.Len(t, strings.Fields(ids), 1, name)

		shown, err := execute(t, append([]string{"show", ids}, dst...)...)
		require.NoError(t, err)
		require.Equal(t, "LINESTRING (0 0 0,3 4 0)", shown, name)
	}

	_, err = execute(t, append([]string{"export", filepath.Join(dir, "out.txt")}, src...)...)
	require.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("GEOMSTORE_DRIVER", "nosuch")
	_, err := execute(t, "list")
	require.True(t, errors.Is(err, driver.ErrInvalidParameter))

	// flags win over the environment
	_, err = execute(t, "list", "--driver", "memory")
	require.NoError(t, err)

	t.Setenv("GEOMSTORE_DRIVER", "fgb")
	t.Setenv("GEOMSTORE_PARAM", "path="+filepath.Join(t.TempDir(), "env.fgb"))
	_, err = execute(t, "create", "POINT (1 1 1)")
	require.NoError(t, err)
}

func TestFormats(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)
	for _, name := range []string{"memory", "fgb", "redis", "postgres", "--param dsn="} {
		require.Contains(t, out, name)
	}
}

func TestHandler(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	a := &app{out: io.Discard, log: log, driver: "memory"}
	require.NoError(t, a.open())
	defer a.close()

	g, err := a.features.Geometries().CreatePoint(geometry.NewCoordinate(1, 2, 3))
	require.NoError(t, err)
	id := g.(stored.Geometry).Identifier()
	srv := httptest.NewServer(a.handler())
	defer srv.Close()

	get := func(path string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, body
	}

	resp, body := get("/geometries/" + id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "POINT (1 2 3)\n", string(body))
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, body = get("/geometries/" + id + "?format=wkb")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body)

	resp, _ = get("/geometries/missing")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get("/features.geojson")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	require.Equal(t, id, fc.Features[0].ID)

	resp, body = get("/data.fgb")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	r, err := fgb.NewReaderFromData(body)
	require.NoError(t, err)
	read, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, read.Features, 1)
}
