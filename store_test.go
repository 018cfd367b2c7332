package main

import "testing"

func TestProgramStoreInsertFindOrder(t *testing.T) {
	ps := newProgramStore(256)

	ps.insert(20, []byte(`PRINT "B"`))
	ps.insert(10, []byte(`PRINT "A"`))
	ps.insert(30, []byte(`PRINT "C"`))

	var order []uint16
	ps.each(func(pl programLine) { order = append(order, pl.lineNo) })

	want := []uint16{10, 20, 30}
	for i, n := range want {
		if order[i] != n {
			t.Fatalf("line order = %v, want %v", order, want)
		}
	}

	ptr, ok := ps.find(20)
	if !ok {
		t.Fatal("find(20) = not found")
	}
	pl := ps.lineAt(ptr)
	if string(pl.body) != `PRINT "B"` {
		t.Fatalf("body = %q", pl.body)
	}
}

func TestProgramStoreDeleteIdempotent(t *testing.T) {
	ps := newProgramStore(256)
	ps.insert(10, []byte("PRINT 1"))

	ps.delete(10)
	if ps.end != 0 {
		t.Fatalf("end after delete = %d, want 0", ps.end)
	}

	// second delete of an absent line is a silent no-op
	ps.delete(10)
	if ps.end != 0 {
		t.Fatalf("end after second delete = %d, want 0", ps.end)
	}

	if _, ok := ps.find(10); ok {
		t.Fatal("find(10) after delete = found")
	}
}

func TestProgramStoreReplaceIsAtomic(t *testing.T) {
	ps := newProgramStore(256)
	ps.insert(10, []byte("PRINT 1"))
	ps.insert(10, []byte("PRINT 2"))

	if ps.end != 4+len("PRINT 2") {
		t.Fatalf("end = %d, want a single record's worth", ps.end)
	}

	ptr, ok := ps.find(10)
	if !ok {
		t.Fatal("find(10) = not found")
	}
	if string(ps.lineAt(ptr).body) != "PRINT 2" {
		t.Fatalf("body = %q, want replaced text", ps.lineAt(ptr).body)
	}
}

func TestProgramStoreOutOfMemory(t *testing.T) {
	ps := newProgramStore(8)

	defer func() {
		r := recover()
		f, ok := r.(*engineFault)
		if !ok || f.kind != errOutOfMemory {
			t.Fatalf("recover() = %#v, want errOutOfMemory fault", r)
		}
	}()

	ps.insert(10, []byte("PRINT 12345678901234567890"))
}

func TestProgramStorePeekPoke(t *testing.T) {
	ps := newProgramStore(16)

	ps.pokeByte(3, 0x42)
	if got := ps.peekByte(3); got != 0x42 {
		t.Fatalf("peekByte(3) = %d, want 0x42", got)
	}

	// out of range reads/writes are silent, not faults
	if got := ps.peekByte(-1); got != 0 {
		t.Fatalf("peekByte(-1) = %d, want 0", got)
	}
	ps.pokeByte(1000, 1) // must not panic
}
