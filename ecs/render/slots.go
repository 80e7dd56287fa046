package render

// slotAllocator hands out fixed-stride offsets into one dynamic-offset buffer.
type slotAllocator struct {
	stride   uint64
	capacity uint32
	next     uint32
}

func newSlotAllocator(payload uint64, alignment, capacity uint32) slotAllocator {
	return slotAllocator{stride: alignUp(payload, uint64(alignment)), capacity: capacity}
}

func (a *slotAllocator) alloc() (uint64, bool) {
	if a.next >= a.capacity {
		return 0, false
	}
	off := uint64(a.next) * a.stride
	a.next++
	return off, true
}

func (a *slotAllocator) remaining() uint32 {
	return a.capacity - a.next
}

func (a *slotAllocator) used() uint32 {
	return a.next
}

func (a *slotAllocator) reset() {
	a.next = 0
}
