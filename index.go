package btmap

import "fmt"

// MustGet returns the value stored under key. It panics with an error
// wrapping ErrKeyNotFound when key is absent; use Get to test for presence.
func (t *Tree[K, V]) MustGet(key K) V {
	v, ok := t.Get(key)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrKeyNotFound, key))
	}
	return v
}

// MustSet replaces the value stored under an existing key. It never inserts:
// it panics with an error wrapping ErrKeyNotFound when key is absent.
func (t *Tree[K, V]) MustSet(key K, value V) {
	p, ok := t.GetMut(key)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrKeyNotFound, key))
	}
	*p = value
}
