package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/library-desk/librarian/internal/database"
	"github.com/library-desk/librarian/internal/menu"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Store implementations
var _ menu.Store = (*database.Database)(nil)
