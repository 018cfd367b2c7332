package main

import "encoding/binary"

//
// programStore (C2) is the ordered, contiguous, editable line store
// described in spec.md §3/§4.1: one fixed byte slab of capacity R,
// packed from offset 0 up to progEnd, each record a little-endian
// (line_number uint16, body_length uint16) header followed by the
// raw source bytes for that line. No tokenization: keeping the raw
// source keeps LIST trivial and exact, per spec.md §9.
//

type programStore struct {
	slab []byte
	end  int
}

func newProgramStore(capacity int) programStore {
	return programStore{slab: make([]byte, capacity)}
}

func (ps *programStore) reset() {
	ps.end = 0
}

//
// find scans the slab in order for a record with the given line
// number. It is deliberately O(n) - spec.md §4.1 calls this out
// explicitly, since the store's real job is the fixed-memory layout,
// not lookup speed.
//

func (ps *programStore) find(lineNo uint16) (ptr int, ok bool) {
	p := 0
	for p < ps.end {
		n := binary.LittleEndian.Uint16(ps.slab[p:])
		l := binary.LittleEndian.Uint16(ps.slab[p+2:])
		if n == lineNo {
			return p, true
		}
		if n > lineNo {
			break
		}
		p += 4 + int(l)
	}
	return 0, false
}

//
// insert splices body in at the position that keeps line numbers in
// strictly ascending order, first deleting any existing record with
// the same number. The delete-then-splice happens without the caller
// ever observing an intermediate state through find/list, satisfying
// the replace-is-atomic law in spec.md §8.
//

func (ps *programStore) insert(lineNo uint16, body []byte) {
	recLen := 4 + len(body)

	free := len(ps.slab) - ps.end
	if old, ok := ps.find(lineNo); ok {
		free += 4 + int(binary.LittleEndian.Uint16(ps.slab[old+2:]))
	}
	if recLen > free {
		outOfMemoryError()
	}

	ps.delete(lineNo)

	pos := ps.end
	p := 0
	for p < ps.end {
		n := binary.LittleEndian.Uint16(ps.slab[p:])
		if n > lineNo {
			pos = p
			break
		}
		l := binary.LittleEndian.Uint16(ps.slab[p+2:])
		p += 4 + int(l)
	}

	copy(ps.slab[pos+recLen:ps.end+recLen], ps.slab[pos:ps.end])

	binary.LittleEndian.PutUint16(ps.slab[pos:], lineNo)
	binary.LittleEndian.PutUint16(ps.slab[pos+2:], uint16(len(body)))
	copy(ps.slab[pos+4:], body)

	ps.end += recLen
}

//
// delete locates and splices the record down; absent lines are a
// silent no-op, per spec.md §4.1, which also makes repeated delete
// of the same line idempotent (spec.md §8).
//

func (ps *programStore) delete(lineNo uint16) {
	ptr, ok := ps.find(lineNo)
	if !ok {
		return
	}

	l := binary.LittleEndian.Uint16(ps.slab[ptr+2:])
	recLen := 4 + int(l)

	copy(ps.slab[ptr:ps.end-recLen], ps.slab[ptr+recLen:ps.end])
	ps.end -= recLen
}

//
// lineAt decodes the record at ptr, along with the offset of the
// record that follows it (== progEnd if this is the last line).
//

func (ps *programStore) lineAt(ptr int) programLine {
	n := binary.LittleEndian.Uint16(ps.slab[ptr:])
	l := binary.LittleEndian.Uint16(ps.slab[ptr+2:])

	return programLine{
		lineNo: n,
		body:   ps.slab[ptr+4 : ptr+4+int(l)],
		ptr:    ptr,
		next:   ptr + 4 + int(l),
	}
}

// each walks every stored line in ascending order, calling fn with
// the decoded record. Used by LIST.
func (ps *programStore) each(fn func(programLine)) {
	for p := 0; p < ps.end; {
		pl := ps.lineAt(p)
		fn(pl)
		p = pl.next
	}
}

// peekByte implements the PEEK pseudo-function (spec.md §4.3): a
// raw read of the program slab, or 0 if addr is out of range.
func (ps *programStore) peekByte(addr int32) byte {
	if addr < 0 || int(addr) >= len(ps.slab) {
		return 0
	}
	return ps.slab[addr]
}

// pokeByte implements POKE (spec.md §4.4): a silent no-op if addr is
// out of range, never an error - the host is expected to know what
// it's doing when it reaches for raw memory access.
func (ps *programStore) pokeByte(addr int32, value byte) {
	if addr < 0 || int(addr) >= len(ps.slab) {
		return
	}
	ps.slab[addr] = value
}
