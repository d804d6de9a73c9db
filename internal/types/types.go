// README: Common identifier and geo point types shared across modules.
package types

type ID string

type Point struct {
	Lat float64
	Lng float64
}
