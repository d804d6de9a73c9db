// README: Courier availability model for dispatch.
package dispatch

import "nosh/internal/types"

// Courier is an available courier in the dispatch pool.
type Courier struct {
	ID       types.ID
	Position types.Point
}
