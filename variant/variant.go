package variant

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	// ErrEmpty a Set was defined without any variant
	ErrEmpty = errors.New("variant set is empty")

	// ErrDuplicate a variant was listed twice
	ErrDuplicate = errors.New("variant duplicated")
)

// Set is a closed, ordered set of variants. It never changes after NewSet returns.
// A nil *Set behaves as a set without variants.
type Set[T comparable] struct {
	items []T
	index map[T]int
}

// NewSet defines the closed set of variants in the given order.
func NewSet[T comparable](items ...T) (*Set[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	set := &Set[T]{
		items: make([]T, 0, len(items)),
		index: make(map[T]int, len(items)),
	}
	for _, item := range items {
		if _, ok := set.index[item]; ok {
			return nil, errors.Wrapf(ErrDuplicate, "%v", item)
		}
		set.index[item] = len(set.items)
		set.items = append(set.items, item)
	}
	return set, nil
}

// MustNewSet is like NewSet but panics on error. It is meant for package level variables.
func MustNewSet[T comparable](items ...T) *Set[T] {
	set, err := NewSet(items...)
	if err != nil {
		panic(err)
	}
	return set
}

// Contains reports whether item is part of the set.
func (s *Set[T]) Contains(item T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[item]
	return ok
}

// Index returns the definition position of item.
func (s *Set[T]) Index(item T) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[item]
	return i, ok
}

// Items returns a copy of the variants in definition order.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// Len returns the number of variants.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Missing returns, in definition order, the variants for which covered reports false.
func (s *Set[T]) Missing(covered func(item T) bool) []T {
	var missing []T
	if s == nil {
		return missing
	}
	for _, item := range s.items {
		if !covered(item) {
			missing = append(missing, item)
		}
	}
	return missing
}

// Unknown returns the keys that are not part of the set, sorted by their printed form.
func (s *Set[T]) Unknown(keys []T) []T {
	var unknown []T
	for _, key := range keys {
		if !s.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	slices.SortFunc(unknown, func(a, b T) bool {
		return fmt.Sprint(a) < fmt.Sprint(b)
	})
	return unknown
}
