// Package pgxvec marshals values of the PostgreSQL pgvector extension types
// vector, halfvec and sparsevec to and from their binary transfer format.
//
// The package is a pure codec layer: it owns the byte-exact wire layouts and
// nothing else. Connection management, SQL execution and schema setup stay
// with the database client; the pgx subpackage wires the codecs into
// github.com/jackc/pgx/v5 type registration.
//
// # Quick Start
//
//	v, err := pgxvec.NewVector([]float64{1, 2, 3})
//	data := v.EncodeBinary()            // bytes pgvector expects on the wire
//	back, err := pgxvec.DecodeVector(data)
//
// With pgx:
//
//	import vecpgx "github.com/hupe1980/pgxvec/pgx"
//
//	conn, _ := pgx.Connect(ctx, dsn)
//	if err := vecpgx.RegisterTypes(ctx, conn); err != nil { ... }
//	_, err = conn.Exec(ctx, "INSERT INTO items (embedding) VALUES ($1)",
//		embedding) // []float64, encoded by the registered codec
//
// # Wire Formats
//
// Dense kinds (vector, halfvec) share one layout and differ only in item
// width:
//
//	u16 dimensions | u16 reserved(=0) | dimensions x big-endian item
//
// The sparse kind stores only non-zero positions:
//
//	i32 dimensions | i32 nnz | i32 reserved(=0) |
//	nnz x big-endian int32 index | nnz x big-endian float32 value
//
// All multi-byte fields are big-endian regardless of host byte order; the
// extension mandates this.
//
// # Concurrency
//
// Every vector value is immutable after construction and every codec
// operation is a stateless pure transform, so all of the package may be used
// from multiple goroutines without coordination.
package pgxvec
