package entity

// Actor identifies the member performing an operation. Identity is
// established upstream; services receive it explicitly and never read it
// from ambient state.
type Actor struct {
	ID   int64
	Name string
}
