package sceneline

import "slices"

// Order is an explicit ordering of native keys, used for the scenes and the
// tracks of a song, as the maps of the hardware format carry no order. All
// methods returning an Order return a new slice and never modify the
// receiver.
type Order []string

// Index returns the position of key, or -1 if the key is not in the order.
func (o Order) Index(key string) int {
	return slices.Index(o, key)
}

// Get returns the key at index; or "" if the index is out of range
func (o Order) Get(index int) string {
	if index < 0 || index >= len(o) {
		return ""
	}
	return o[index]
}

// Insert returns an order with key inserted at index. The index is clamped
// to the bounds of the order.
func (o Order) Insert(index int, key string) Order {
	index = max(min(index, len(o)), 0)
	return slices.Insert(slices.Clone(o), index, key)
}

// Remove returns an order without key.
func (o Order) Remove(key string) Order {
	i := o.Index(key)
	if i < 0 {
		return o
	}
	return slices.Delete(slices.Clone(o), i, i+1)
}

// Replace returns an order where oldKey has been replaced by newKey, keeping
// its position.
func (o Order) Replace(oldKey, newKey string) Order {
	i := o.Index(oldKey)
	if i < 0 {
		return o
	}
	ret := slices.Clone(o)
	ret[i] = newKey
	return ret
}

// Move returns an order where key has been removed and reinserted at index.
// The index is clamped to the bounds of the order.
func (o Order) Move(key string, index int) Order {
	if o.Index(key) < 0 {
		return o
	}
	return o.Remove(key).Insert(index, key)
}

// Swap returns an order with the elements at i and j swapped. Out of range
// indices return the order unchanged.
func (o Order) Swap(i, j int) Order {
	if i < 0 || j < 0 || i >= len(o) || j >= len(o) || i == j {
		return o
	}
	ret := slices.Clone(o)
	ret[i], ret[j] = ret[j], ret[i]
	return ret
}
