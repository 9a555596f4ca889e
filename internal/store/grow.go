package store

// initialCapacity is the backing capacity given to an empty store the
// first time it grows.
const initialCapacity = 16

// growCapacity doubles the current capacity, or initializes it for an
// empty store. All three stores share this policy so appends keep the
// same amortized cost.
func growCapacity(current int) int {
	if current > 0 {
		return current * 2
	}
	return initialCapacity
}
