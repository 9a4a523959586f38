// Package postgres stores documents as JSONB rows in a PostgreSQL table.
// The table is created on open when it does not exist; updates lock the row
// with SELECT ... FOR UPDATE inside a transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/internal/docstore"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

const (
	defaultTable   = "geometries"
	defaultTimeout = 10 * time.Second
)

// Format describes the PostgreSQL driver.
var Format = driver.Format{
	Identifier: "postgres",
	Name:       "PostgreSQL",
	Version:    "1.0",
	Parameters: []driver.Parameter{
		{Identifier: "dsn", Name: "Connection string", Description: "lib/pq connection string or URL", Type: driver.TypeString, Conditions: []driver.Condition{driver.NotEmpty()}},
		{Identifier: "table", Name: "Table", Type: driver.TypeString, Default: defaultTable, Conditions: []driver.Condition{driver.NotEmpty()}},
		{Identifier: "timeout", Name: "Timeout", Description: "per statement timeout", Type: driver.TypeDuration, Default: defaultTimeout, Conditions: []driver.Condition{driver.Positive()}},
		{Identifier: "max_connections", Name: "Max connections", Type: driver.TypeInt, Default: 10, Conditions: []driver.Condition{driver.Between(1, 1000)}},
	},
}

// Driver is a driver.FeatureDriver backed by a PostgreSQL table.
type Driver struct {
	*docstore.Documents

	store  *store
	params driver.Parameters
	log    logrus.FieldLogger
}

var _ driver.FeatureDriver = (*Driver)(nil)

// Option configures a Driver created with New.
type Option func(*store)

func WithTable(table string) Option {
	return func(s *store) { s.table = table }
}

func WithTimeout(d time.Duration) Option {
	return func(s *store) { s.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *store) { s.log = log }
}

// New wraps an open database, creating the table if needed. The driver
// owns db and closes it on Close.
func New(db *sql.DB, opts ...Option) (*Driver, error) {
	s := &store{db: db, table: defaultTable, timeout: defaultTimeout, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.prepare()
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return &Driver{
		Documents: docstore.New(s, s.log),
		store:     s,
		params:    driver.Parameters{"table": s.table, "timeout": s.timeout},
		log:       s.log,
	}, nil
}

// Open validates params and connects with lib/pq.
func Open(params map[string]any, opts ...Option) (*Driver, error) {
	p, err := Format.Validate(params)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", p.String("dsn"))
	if err != nil {
		return nil, driver.NewConnectionError("", err)
	}
	db.SetMaxOpenConns(p.Int("max_connections"))
	db.SetMaxIdleConns(p.Int("max_connections") / 2)

	opts = append([]Option{WithTable(p.String("table")), WithTimeout(p.Duration("timeout"))}, opts...)
	d, err := New(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	d.params = p
	d.log.WithField("table", p.String("table")).Info("opened postgres driver")
	return d, nil
}

func (d *Driver) Format() driver.Format { return Format }
func (d *Driver) Parameters() driver.Parameters { return d.params }

func (d *Driver) Close() error {
	if err := d.store.db.Close(); err != nil {
		return driver.NewConnectionError(d.store.table, err)
	}
	d.log.Debug("closed postgres driver")
	return nil
}

type store struct {
	db      *sql.DB
	table   string
	timeout time.Duration
	log     logrus.FieldLogger

	// statements with the quoted table name filled in
	createTable, insert, exists, list, remove, load, lock, save string
}

var _ docstore.Store = (*store)(nil)

func (s *store) prepare() {
	t := pq.QuoteIdentifier(s.table)
	s.createTable = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	seq BIGSERIAL NOT NULL,
	document JSONB NOT NULL
)`, t)
	s.insert = fmt.Sprintf(`INSERT INTO %s (id, document) VALUES ($1, $2)`, t)
	s.exists = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, t)
	s.list = fmt.Sprintf(`SELECT id FROM %s ORDER BY seq`, t)
	s.remove = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t)
	s.load = fmt.Sprintf(`SELECT document FROM %s WHERE id = $1`, t)
	s.lock = fmt.Sprintf(`SELECT document FROM %s WHERE id = $1 FOR UPDATE`, t)
	s.save = fmt.Sprintf(`UPDATE %s SET document = $2 WHERE id = $1`, t)
}

func (s *store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *store) fail(err error) error {
	return driver.NewConnectionError(s.table, err)
}

func (s *store) ensureSchema() error {
	ctx, cancel := s.context()
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.createTable); err != nil {
		return s.fail(errors.Wrap(err, "creating table"))
	}
	s.log.WithField("table", s.table).Debug("schema ready")
	return nil
}

func (s *store) Create(id string) error {
	ctx, cancel := s.context()
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.insert, id, []byte("{}")); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *store) Contains(id string) (bool, error) {
	ctx, cancel := s.context()
	defer cancel()
	var ok bool
	if err := s.db.QueryRowContext(ctx, s.exists, id).Scan(&ok); err != nil {
		return false, s.fail(err)
	}
	return ok, nil
}

func (s *store) Identifiers() ([]string, error) {
	ctx, cancel := s.context()
	defer cancel()
	rows, err := s.db.QueryContext(ctx, s.list)
	if err != nil {
		return nil, s.fail(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, s.fail(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err)
	}
	return ids, nil
}

func (s *store) Remove(id string) error {
	ctx, cancel := s.context()
	defer cancel()
	res, err := s.db.ExecContext(ctx, s.remove, id)
	if err != nil {
		return s.fail(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.fail(err)
	}
	if n == 0 {
		return driver.NotFound(id)
	}
	return nil
}

func (s *store) Load(id string) (*tree.Document, error) {
	ctx, cancel := s.context()
	defer cancel()
	var b []byte
	err := s.db.QueryRowContext(ctx, s.load, id).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, driver.NotFound(id)
	}
	if err != nil {
		return nil, s.fail(err)
	}
	doc, err := tree.Decode(b)
	if err != nil {
		return nil, s.fail(err)
	}
	return doc, nil
}

func (s *store) Update(id string, fn func(*tree.Document) error) (err error) {
	ctx, cancel := s.context()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail(err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.WithError(rbErr).Warn("rollback failed")
			}
		}
	}()

	var b []byte
	err = tx.QueryRowContext(ctx, s.lock, id).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return driver.NotFound(id)
	}
	if err != nil {
		return s.fail(err)
	}
	doc, err := tree.Decode(b)
	if err != nil {
		return s.fail(err)
	}
	if err = fn(doc); err != nil {
		return err
	}
	out, err := doc.Encode()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, s.save, id, out); err != nil {
		return s.fail(err)
	}
	if err = tx.Commit(); err != nil {
		return s.fail(err)
	}
	return nil
}
