// Package interfaces holds compile-time checks that the concrete data access
// types satisfy the interfaces their consumers declare.
//
// Consumers define the narrow interface they need next to the code that uses
// it (for example menu.Store), and the implementation lives in
// internal/database. Nothing imports this package; it exists so that
// `go build ./...` fails as soon as the two drift apart.
package interfaces
