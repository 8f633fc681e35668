//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func testAtoms() atomSet {
	return atomSet{clipboard: 10, targets: 11, png: 12, property: 13}
}

func TestReplyTargetsAdvertisesPNGOnlyWhenHeld(t *testing.T) {
	atoms := testAtoms()

	r, ok := atoms.reply(atoms.targets, nil)
	if !ok {
		t.Fatalf("TARGETS should always be answered")
	}
	if r.typ != xproto.AtomAtom || r.format != 32 || r.length() != 1 {
		t.Fatalf("unexpected empty TARGETS reply %+v", r)
	}

	r, ok = atoms.reply(atoms.targets, []byte{1, 2, 3})
	if !ok || r.length() != 2 {
		t.Fatalf("expected two targets, got %+v ok=%v", r, ok)
	}
	if got := xproto.Atom(xgb.Get32(r.payload[4:])); got != atoms.png {
		t.Fatalf("second target = %d, want %d", got, atoms.png)
	}
}

func TestReplyPNG(t *testing.T) {
	atoms := testAtoms()
	if _, ok := atoms.reply(atoms.png, nil); ok {
		t.Fatalf("image/png must be refused when nothing is held")
	}
	data := []byte("\x89PNG")
	r, ok := atoms.reply(atoms.png, data)
	if !ok {
		t.Fatalf("image/png refused")
	}
	if r.typ != atoms.png || r.format != 8 || r.length() != uint32(len(data)) || !bytes.Equal(r.payload, data) {
		t.Fatalf("unexpected png reply %+v", r)
	}
}

func TestReplyRefusesText(t *testing.T) {
	atoms := testAtoms()
	if _, ok := atoms.reply(xproto.AtomString, []byte("x")); ok {
		t.Fatalf("text targets are not offered")
	}
}

func TestAtomsToBytes(t *testing.T) {
	buf := atomsToBytes([]xproto.Atom{1, 0x01020304})
	if len(buf) != 8 {
		t.Fatalf("len = %d", len(buf))
	}
	if xgb.Get32(buf) != 1 || xgb.Get32(buf[4:]) != 0x01020304 {
		t.Fatalf("round trip failed: %v", buf)
	}
}
