package cli

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/fgb"
	"github.com/tingold/orb-geometry/feature"
)

func (a *app) createCommand() *cobra.Command {
	var attrs map[string]string
	cmd := &cobra.Command{
		Use:   "create <text>",
		Short: "Store a geometry given in text form as a new feature",
		Example: `  geomstore create "POINT (1 2 3)" --attr name=home
  geomstore create "POLYGON ((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0))"`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "attribute as key=value, repeatable")
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		g, err := geometry.ParseText(a.features.GeometryFactory(), args[0])
		if err != nil {
			return err
		}
		values := make(map[string]any, len(attrs))
		for k, v := range attrs {
			values[k] = v
		}
		f, err := a.features.CreateFeature(g, values)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, f.Identifier())
		return nil
	})
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored identifiers with their geometry kind",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		ids, err := a.drv.GetIdentifiers()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "IDENTIFIER\tKIND\tATTRIBUTES\tMEMBERS")
		for _, id := range ids {
			kind := "-"
			if k, err := a.drv.ReadGeometryKind(id); err == nil {
				kind = k.String()
			} else if !errors.Is(err, driver.ErrPathNotFound) {
				return err
			}
			attrs, err := a.drv.ReadAttributes(id)
			if err != nil {
				return err
			}
			members, err := a.drv.ReadCollectionMembers(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", id, kind, len(attrs), len(members))
		}
		return w.Flush()
	})
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <identifier>",
		Short: "Print a stored feature",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, wkb, geojson)")
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		f, err := a.features.FeatureAt(args[0])
		if err != nil {
			return err
		}
		switch format {
		case "geojson":
			gf, err := feature.ToGeoJSON(f)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(gf, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode feature")
			}
			fmt.Fprintln(a.out, string(b))
			return nil
		case "text", "wkb":
		default:
			return errors.Newf("unknown format %q", format)
		}

		g, err := f.Geometry()
		if err != nil {
			return err
		}
		if g == nil {
			return errors.Newf("%s has no geometry", args[0])
		}
		if format == "wkb" {
			b, err := geometry.MarshalWKB(g, binary.LittleEndian)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, hex.EncodeToString(b))
			return nil
		}
		fmt.Fprintln(a.out, geometry.Text(g))
		return nil
	})
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <identifier>...",
		Short: "Delete stored features",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := a.features.DeleteFeature(id); err != nil {
				return err
			}
		}
		return nil
	})
	return cmd
}

// collection gathers every stored feature as GeoJSON.
func (a *app) collection() (*geojson.FeatureCollection, error) {
	ids, err := a.drv.GetIdentifiers()
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, id := range ids {
		f, err := a.features.FeatureAt(id)
		if err != nil {
			return nil, err
		}
		gf, err := feature.ToGeoJSON(f)
		if err != nil {
			return nil, err
		}
		fc.Append(gf)
	}
	return fc, nil
}

func (a *app) exportCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write every stored feature to a .geojson or .fgb file",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&name, "name", "geometries", "layer name of FlatGeobuf output")
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		fc, err := a.collection()
		if err != nil {
			return err
		}
		path := args[0]
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".fgb" && ext != ".geojson" && ext != ".json" {
			return errors.Newf("cannot export to %s, expected .geojson or .fgb", path)
		}
		out, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		defer out.Close()

		if ext == ".fgb" {
			opts := fgb.DefaultOptions()
			opts.Name = name
			opts.ReferenceSystem = a.features.Geometries().ReferenceSystem()
			err = fgb.WriteFeatures(out, fc, opts)
		} else {
			err = json.NewEncoder(out).Encode(fc)
		}
		if err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{"path": path, "features": len(fc.Features)}).Info("exported")
		return out.Close()
	})
	return cmd
}

func (a *app) importCommand() *cobra.Command {
	var asCollection bool
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Store the features of a .geojson or .fgb file",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&asCollection, "collection", false, "also store a collection listing the imported features")
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		fc, err := readCollection(args[0])
		if err != nil {
			return err
		}
		if asCollection {
			c, err := feature.FromGeoJSONCollection(a.features, fc)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, c.Identifier())
			return nil
		}
		for _, gf := range fc.Features {
			f, err := feature.FromGeoJSON(a.features, gf)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, f.Identifier())
		}
		return nil
	})
	return cmd
}

func readCollection(path string) (*geojson.FeatureCollection, error) {
	if fgb.Format.MatchesExtension(path) {
		r, err := fgb.NewReader(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.ReadAll()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return fc, nil
}

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Describe the available drivers and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, name := range driverNames() {
				f := drivers[name].format
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", f.Identifier, f.Name, f.Version, strings.Join(f.Extensions, ","))
				for _, p := range f.Parameters {
					req := "required"
					if p.Optional || p.Default != nil {
						req = fmt.Sprintf("default %v", p.Default)
					}
					fmt.Fprintf(w, "\t--param %s=<%s>\t%s\t%s\n", p.Identifier, p.Type, req, p.Description)
				}
			}
			return w.Flush()
		},
	}
}
