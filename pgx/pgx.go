// Package pgx registers the pgxvec codecs with a github.com/jackc/pgx/v5
// connection, so vector, halfvec and sparsevec columns scan into and encode
// from the native pgxvec types in binary mode.
package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hupe1980/pgxvec"
)

type options struct {
	schema string
}

// Option configures type registration.
type Option func(*options)

// WithSchema selects the schema the pgvector extension types live in.
// Defaults to "public".
func WithSchema(schema string) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// RegisterTypes looks up the extension types vector, halfvec and sparsevec
// on the connected database and registers a binary-format codec for each
// with the connection's type map. It fails if any of the three types is
// missing, which usually means CREATE EXTENSION vector has not been run.
func RegisterTypes(ctx context.Context, conn *pgx.Conn, opts ...Option) error {
	o := options{schema: "public"}
	for _, opt := range opts {
		opt(&o)
	}

	names := []string{pgxvec.TypeVector, pgxvec.TypeHalfVector, pgxvec.TypeSparseVector}
	rows, err := conn.Query(ctx, `
		SELECT t.typname, t.oid
		FROM pg_type t
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE t.typname = ANY($1) AND n.nspname = $2`, names, o.schema)
	if err != nil {
		return fmt.Errorf("pgxvec: look up extension type oids: %w", err)
	}
	defer rows.Close()

	oids := make(map[string]uint32, len(names))
	for rows.Next() {
		var name string
		var oid uint32
		if err := rows.Scan(&name, &oid); err != nil {
			return fmt.Errorf("pgxvec: scan extension type oid: %w", err)
		}
		oids[name] = oid
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("pgxvec: look up extension type oids: %w", err)
	}

	codecs := map[string]pgtype.Codec{
		pgxvec.TypeVector:       &VectorCodec{},
		pgxvec.TypeHalfVector:   &HalfVectorCodec{},
		pgxvec.TypeSparseVector: &SparseVectorCodec{},
	}
	for _, name := range names {
		oid, ok := oids[name]
		if !ok {
			return fmt.Errorf("pgxvec: type %q not found in schema %q (is the vector extension installed?)", name, o.schema)
		}
		conn.TypeMap().RegisterType(&pgtype.Type{Name: name, OID: oid, Codec: codecs[name]})
	}
	return nil
}
