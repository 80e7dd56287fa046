package ecs

import "strconv"

// Entity is a generational key: the low 32 bits are the slot id, the high 32
// bits the generation of that slot. The zero Entity is never issued, and a
// destroyed key stays distinct from every key issued after it.
type Entity uint64

// entityID indexes a storage slot. Id 0 is reserved for "no entity".
type entityID uint32

// generation is bumped each time a slot is freed.
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats the key as "<id>v<generation>", e.g. "3v1".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e names a slot at all. It says nothing about liveness;
// use Scene.IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
