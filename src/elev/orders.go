package elev

import (
	"slices"
)

type order int

const (
	ascending order = iota
	descending
)

// floorSet holds pending floors in the order a sweep serves them.
type floorSet struct {
	order  order
	floors []int
}

func newFloorSet(o order) *floorSet {
	return &floorSet{order: o}
}

func (s *floorSet) compare(a, b int) int {
	if s.order == descending {
		return b - a
	}
	return a - b
}

func (s *floorSet) find(floor int) (int, bool) {
	return slices.BinarySearchFunc(s.floors, floor, s.compare)
}

// add returns false if the floor was already pending.
func (s *floorSet) add(floor int) bool {
	i, found := s.find(floor)
	if found {
		return false
	}
	s.floors = slices.Insert(s.floors, i, floor)
	return true
}

func (s *floorSet) remove(floor int) bool {
	i, found := s.find(floor)
	if !found {
		return false
	}
	s.floors = slices.Delete(s.floors, i, i+1)
	return true
}

func (s *floorSet) contains(floor int) bool {
	_, found := s.find(floor)
	return found
}

func (s *floorSet) len() int {
	return len(s.floors)
}

func (s *floorSet) empty() bool {
	return len(s.floors) == 0
}

func (s *floorSet) ordersAbove(floor int) bool {
	for _, f := range s.floors {
		if f > floor {
			return true
		}
	}
	return false
}

func (s *floorSet) ordersBelow(floor int) bool {
	for _, f := range s.floors {
		if f < floor {
			return true
		}
	}
	return false
}
