package cli

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/fgb"
	"github.com/tingold/orb-geometry/driver/memory"
	"github.com/tingold/orb-geometry/driver/postgres"
	"github.com/tingold/orb-geometry/driver/redis"
)

type opener func(params map[string]any, log logrus.FieldLogger) (driver.FeatureDriver, error)

type registered struct {
	format driver.Format
	open   opener
}

var drivers = map[string]registered{
	memory.Format.Identifier: {memory.Format, func(p map[string]any, log logrus.FieldLogger) (driver.FeatureDriver, error) {
		return memory.Open(p, memory.WithLogger(log))
	}},
	fgb.Format.Identifier: {fgb.Format, func(p map[string]any, log logrus.FieldLogger) (driver.FeatureDriver, error) {
		return fgb.Open(p, fgb.WithLogger(log))
	}},
	redis.Format.Identifier: {redis.Format, func(p map[string]any, log logrus.FieldLogger) (driver.FeatureDriver, error) {
		return redis.Open(p, redis.WithLogger(log))
	}},
	postgres.Format.Identifier: {postgres.Format, func(p map[string]any, log logrus.FieldLogger) (driver.FeatureDriver, error) {
		return postgres.Open(p, postgres.WithLogger(log))
	}},
}

// openDriver opens the driver registered under name. String parameters
// are converted by the driver format.
func openDriver(name string, params map[string]string, log logrus.FieldLogger) (driver.FeatureDriver, error) {
	r, ok := drivers[name]
	if !ok {
		return nil, driver.InvalidParameter("driver", "unknown driver %q, expected one of %v", name, driverNames())
	}
	values := make(map[string]any, len(params))
	for k, v := range params {
		values[k] = v
	}
	return r.open(values, log)
}

func driverNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
