package blocklist

// block is a fixed-capacity ring buffer.
// Logical index i lives at data[(head+i)%len(data)].
type block[E any] struct {
	data []E
	head int
	size int
}

func (b *block[E]) init(capacity int) {
	b.data = make([]E, capacity)
	b.head = 0
	b.size = 0
}

func (b *block[E]) full() bool {
	return b.size == len(b.data)
}

func (b *block[E]) empty() bool {
	return b.size == 0
}

func (b *block[E]) physical(i int) int {
	return (b.head + i) % len(b.data)
}

func (b *block[E]) append(e E) {
	if b.full() {
		panic(ErrCapacity)
	}
	b.data[b.physical(b.size)] = e
	b.size++
}

func (b *block[E]) prepend(e E) {
	if b.full() {
		panic(ErrCapacity)
	}
	if b.head == 0 {
		b.head = len(b.data) - 1
	} else {
		b.head--
	}
	b.data[b.head] = e
	b.size++
}

func (b *block[E]) get(i int) E {
	return b.data[b.physical(i)]
}

func (b *block[E]) set(i int, e E) (old E) {
	p := b.physical(i)
	old = b.data[p]
	b.data[p] = e
	return old
}

// insert places e at logical index i in [0,size], moving whichever side of i is shorter.
func (b *block[E]) insert(i int, e E) {
	if b.full() {
		panic(ErrCapacity)
	}

	if i < b.size-i {
		// step head back; everything at or after i is already in place
		if b.head == 0 {
			b.head = len(b.data) - 1
		} else {
			b.head--
		}
		for k := 0; k < i; k++ {
			b.data[b.physical(k)] = b.data[b.physical(k+1)]
		}
	} else {
		for k := b.size; k > i; k-- {
			b.data[b.physical(k)] = b.data[b.physical(k-1)]
		}
	}

	b.data[b.physical(i)] = e
	b.size++
}

// remove takes the element at logical index i in [0,size), moving whichever side of i is shorter.
func (b *block[E]) remove(i int) (out E) {
	var zero E
	out = b.get(i)

	if i < b.size-1-i {
		for k := i; k > 0; k-- {
			b.data[b.physical(k)] = b.data[b.physical(k-1)]
		}
		b.data[b.head] = zero
		b.head = b.physical(1)
	} else {
		for k := i; k < b.size-1; k++ {
			b.data[b.physical(k)] = b.data[b.physical(k+1)]
		}
		b.data[b.physical(b.size-1)] = zero
	}

	b.size--
	if b.size == 0 {
		b.head = 0
	}
	return out
}

// moveTail moves the elements at logical [from,size) to the end of dst.
func (b *block[E]) moveTail(from int, dst *block[E]) {
	var zero E
	for k := from; k < b.size; k++ {
		p := b.physical(k)
		dst.append(b.data[p])
		b.data[p] = zero
	}
	b.size = from
	if b.size == 0 {
		b.head = 0
	}
}

// drain moves every element to the end of dst, leaving b empty.
func (b *block[E]) drain(dst *block[E]) {
	b.moveTail(0, dst)
}

func (b *block[E]) clear() {
	clear(b.data)
	b.head = 0
	b.size = 0
}
