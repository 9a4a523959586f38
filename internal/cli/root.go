// Package cli implements the geomstore command: it opens a feature driver
// and creates, lists, exports and serves the geometries it stores.
//
// Every persistent flag can also be set through a GEOMSTORE_ environment
// variable, e.g. --driver through GEOMSTORE_DRIVER. Variables are read from
// the process environment and from the file named by --env-file.
package cli

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/feature"
	"github.com/tingold/orb-geometry/stored"
)

const envPrefix = "GEOMSTORE_"

// app is the state shared by the commands of one invocation.
type app struct {
	out io.Writer
	log *logrus.Logger

	envFile  string
	logLevel string
	driver   string
	params   map[string]string
	scale    float64
	srid     int

	mu       sync.Mutex
	drv      driver.FeatureDriver
	features *feature.StoredFactory
}

// NewRootCommand returns the geomstore command writing its output to out
// and its logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	log := logrus.New()
	log.SetOutput(errOut)
	a := &app{out: out, log: log}

	root := &cobra.Command{
		Use:           "geomstore",
		Short:         "Store and inspect geometries and features",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "file of GEOMSTORE_ variables to load, ignored when missing")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&a.driver, "driver", "memory", "driver to open (memory, fgb, redis, postgres)")
	flags.StringToStringVar(&a.params, "param", nil, "driver parameter as key=value, repeatable")
	flags.Float64Var(&a.scale, "scale", 0, "fixed precision scale, 0 for floating precision")
	flags.IntVar(&a.srid, "srid", 0, "EPSG code of new geometries, 0 for none")

	root.AddCommand(
		a.createCommand(),
		a.listCommand(),
		a.showCommand(),
		a.deleteCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.serveCommand(),
		a.formatsCommand(),
	)
	return root
}

// Execute runs the geomstore command with the process arguments.
func Execute() int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		logrus.WithError(err).Error("geomstore failed")
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := loadEnvFile(a.envFile); err != nil {
		return err
	}
	if err := bindEnv(cmd.Flags()); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid --log-level")
	}
	a.log.SetLevel(level)

	if cmd.Name() == "formats" {
		return nil
	}
	return a.open()
}

// run wraps a command body so the driver is closed, and a file driver
// flushed, whether or not the body fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// bindEnv sets every flag left at its default from the matching
// GEOMSTORE_ variable.
func bindEnv(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if setErr := flags.Set(f.Name, v); setErr != nil {
			err = errors.Wrapf(setErr, "invalid %s", name)
		}
	})
	return err
}

func (a *app) open() error {
	d, err := openDriver(a.driver, a.params, a.log)
	if err != nil {
		return err
	}

	pm := geometry.Default()
	if a.scale != 0 {
		if pm, err = geometry.NewFixed(a.scale); err != nil {
			_ = d.Close()
			return err
		}
	}
	var rs *geometry.ReferenceSystem
	if a.srid != 0 {
		rs = &geometry.ReferenceSystem{Code: a.srid, Authority: "EPSG"}
	}

	geometries, err := stored.NewFactory(d, pm, rs, stored.WithLogger(a.log))
	if err != nil {
		_ = d.Close()
		return err
	}
	features, err := feature.NewStoredFactory(d, geometries, feature.WithLogger(a.log))
	if err != nil {
		_ = d.Close()
		return err
	}
	a.drv, a.features = d, features
	return nil
}

func (a *app) close() error {
	if a.drv == nil {
		return nil
	}
	err := a.drv.Close()
	a.drv, a.features = nil, nil
	return err
}
