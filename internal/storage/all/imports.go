// Package all wires the built-in storage backends into the storage factory.
//
// The package exists purely for side effects: a blank import runs the init
// functions of each backend, which register their factories with the storage
// package. Importing it makes these kinds available at runtime:
//
//   - "postgres" (internal/storage/postgres)
//   - "sqlite"   (internal/storage/sqlite)
//
// A binary that only needs one backend can import that backend package
// directly instead of this one.
package all

import (
	_ "github.com/Giomelox/Be-Analytic-ETL/internal/storage/postgres"
	_ "github.com/Giomelox/Be-Analytic-ETL/internal/storage/sqlite"
)
