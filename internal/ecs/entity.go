package ecs

// EntityID uniquely identifies an entity in the world. IDs are never reused.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
// Components that systems mutate in place are stored as pointers.
type Component interface {
	Type() ComponentType
}
