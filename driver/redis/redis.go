// Package redis stores documents in Redis. Each identifier is a JSON
// document under <prefix>:doc:<id>; creation order is kept in the sorted
// set <prefix>:ids scored by the counter <prefix>:seq, both written by a
// single creation script. Updates run in WATCH transactions and are
// retried when another client wins the race.
package redis

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/internal/docstore"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

const (
	defaultPrefix  = "geom"
	defaultTimeout = 5 * time.Second
	defaultRetries = 8
)

// Format describes the Redis driver.
var Format = driver.Format{
	Identifier: "redis",
	Name:       "Redis",
	Version:    "1.0",
	Parameters: []driver.Parameter{
		{Identifier: "address", Name: "Address", Description: "host:port of the server", Type: driver.TypeString, Conditions: []driver.Condition{driver.NotEmpty()}},
		{Identifier: "password", Name: "Password", Type: driver.TypeString, Optional: true},
		{Identifier: "database", Name: "Database", Type: driver.TypeInt, Default: 0, Conditions: []driver.Condition{driver.Between(0, 15)}},
		{Identifier: "prefix", Name: "Key prefix", Type: driver.TypeString, Default: defaultPrefix, Conditions: []driver.Condition{driver.NotEmpty()}},
		{Identifier: "timeout", Name: "Timeout", Description: "per operation timeout", Type: driver.TypeDuration, Default: defaultTimeout, Conditions: []driver.Condition{driver.Positive()}},
		{Identifier: "retries", Name: "Retries", Description: "attempts per optimistic update", Type: driver.TypeInt, Default: defaultRetries, Conditions: []driver.Condition{driver.Between(1, 100)}},
	},
}

// Driver is a driver.FeatureDriver backed by a Redis client.
type Driver struct {
	*docstore.Documents

	store  *store
	params driver.Parameters
	log    logrus.FieldLogger
}

var _ driver.FeatureDriver = (*Driver)(nil)

// Option configures a Driver created with New.
type Option func(*store)

func WithPrefix(prefix string) Option {
	return func(s *store) { s.prefix = prefix }
}

func WithTimeout(d time.Duration) Option {
	return func(s *store) { s.timeout = d }
}

func WithRetries(n int) Option {
	return func(s *store) { s.retries = n }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *store) { s.log = log }
}

// New wraps an existing client. The driver owns the client and closes it
// on Close.
func New(client *goredis.Client, opts ...Option) *Driver {
	s := &store{
		client:  client,
		prefix:  defaultPrefix,
		timeout: defaultTimeout,
		retries: defaultRetries,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return &Driver{
		Documents: docstore.New(s, s.log),
		store:     s,
		params:    driver.Parameters{"prefix": s.prefix, "timeout": s.timeout, "retries": s.retries},
		log:       s.log,
	}
}

// Open validates params, connects and pings the server.
func Open(params map[string]any, opts ...Option) (*Driver, error) {
	p, err := Format.Validate(params)
	if err != nil {
		return nil, err
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     p.String("address"),
		Password: p.String("password"),
		DB:       p.Int("database"),
	})
	opts = append([]Option{
		WithPrefix(p.String("prefix")),
		WithTimeout(p.Duration("timeout")),
		WithRetries(p.Int("retries")),
	}, opts...)
	d := New(client, opts...)
	d.params = p

	ctx, cancel := d.store.context()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, driver.NewConnectionError(p.String("address"), err)
	}
	d.log.WithFields(logrus.Fields{
		"address":  p.String("address"),
		"database": p.Int("database"),
		"prefix":   p.String("prefix"),
	}).Info("opened redis driver")
	return d, nil
}

func (d *Driver) Format() driver.Format { return Format }
func (d *Driver) Parameters() driver.Parameters { return d.params }

func (d *Driver) Close() error {
	if err := d.store.client.Close(); err != nil {
		return driver.NewConnectionError("", err)
	}
	d.log.Debug("closed redis driver")
	return nil
}

type store struct {
	client  *goredis.Client
	prefix  string
	timeout time.Duration
	retries int
	log     logrus.FieldLogger
}

var _ docstore.Store = (*store)(nil)

func (s *store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *store) docKey(id string) string { return s.prefix + ":doc:" + id }
func (s *store) idsKey() string { return s.prefix + ":ids" }
func (s *store) seqKey() string { return s.prefix + ":seq" }

var emptyDocument = []byte("{}")

// createScript claims the document key and records its creation order in
// one step. It returns 0 when the key already exists.
var createScript = goredis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return 0
end
local seq = redis.call("INCR", KEYS[3])
redis.call("ZADD", KEYS[2], seq, ARGV[2])
return 1
`)

func (s *store) Create(id string) error {
	ctx, cancel := s.context()
	defer cancel()

	keys := []string{s.docKey(id), s.idsKey(), s.seqKey()}
	created, err := createScript.Run(ctx, s.client, keys, emptyDocument, id).Int()
	if err != nil {
		return driver.NewConnectionError(s.docKey(id), err)
	}
	if created == 0 {
		return errors.Newf("redis: identifier %q already exists", id)
	}
	return nil
}

func (s *store) Contains(id string) (bool, error) {
	ctx, cancel := s.context()
	defer cancel()
	n, err := s.client.Exists(ctx, s.docKey(id)).Result()
	if err != nil {
		return false, driver.NewConnectionError(s.docKey(id), err)
	}
	return n > 0, nil
}

func (s *store) Identifiers() ([]string, error) {
	ctx, cancel := s.context()
	defer cancel()
	ids, err := s.client.ZRange(ctx, s.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, driver.NewConnectionError(s.idsKey(), err)
	}
	return ids, nil
}

func (s *store) Remove(id string) error {
	ctx, cancel := s.context()
	defer cancel()

	var del *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, s.docKey(id))
		pipe.ZRem(ctx, s.idsKey(), id)
		return nil
	})
	if err != nil {
		return driver.NewConnectionError(s.docKey(id), err)
	}
	if del.Val() == 0 {
		return driver.NotFound(id)
	}
	return nil
}

func (s *store) Load(id string) (*tree.Document, error) {
	ctx, cancel := s.context()
	defer cancel()
	b, err := s.client.Get(ctx, s.docKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, driver.NotFound(id)
	}
	if err != nil {
		return nil, driver.NewConnectionError(s.docKey(id), err)
	}
	doc, err := tree.Decode(b)
	if err != nil {
		return nil, driver.NewConnectionError(s.docKey(id), err)
	}
	return doc, nil
}

func (s *store) Update(id string, fn func(*tree.Document) error) error {
	ctx, cancel := s.context()
	defer cancel()
	key := s.docKey(id)

	for attempt := 1; attempt <= s.retries; attempt++ {
		var applyErr error
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			b, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}
			doc, err := tree.Decode(b)
			if err != nil {
				return err
			}
			if applyErr = fn(doc); applyErr != nil {
				return applyErr
			}
			out, err := doc.Encode()
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, key, out, 0)
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			return nil
		case applyErr != nil:
			return applyErr
		case errors.Is(err, goredis.Nil):
			return driver.NotFound(id)
		case errors.Is(err, goredis.TxFailedErr):
			s.log.WithFields(logrus.Fields{"key": key, "attempt": attempt}).Debug("optimistic update lost a race, retrying")
			continue
		default:
			return driver.NewConnectionError(key, err)
		}
	}
	return driver.NewConnectionError(key, errors.Newf("update failed after %d attempts", s.retries))
}
