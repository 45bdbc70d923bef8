package host

import (
	"testing"
	"time"
)

func TestKeyQueuePressRelease(t *testing.T) {
	q := newKeyQueue(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	if !q.Press('a', t0) {
		t.Fatal("first press should queue an event")
	}
	if q.Press('a', t0.Add(50*time.Millisecond)) {
		t.Error("repeat while held should not queue another press")
	}

	if v := q.Pop(); v != 0x100|'a' {
		t.Errorf("Pop() = %#x, expected press of 'a'", v)
	}
	if v := q.Pop(); v != 0 {
		t.Errorf("Pop() on empty queue = %#x, expected 0", v)
	}

	// The repeat extended the deadline to t0+150ms
	q.Expire(t0.Add(120 * time.Millisecond))
	if q.Len() != 0 {
		t.Error("key released before its extended deadline")
	}

	q.Expire(t0.Add(150 * time.Millisecond))
	if v := q.Pop(); v != 'a' {
		t.Errorf("Pop() = %#x, expected release of 'a'", v)
	}
	if q.Held() != 0 {
		t.Errorf("Held() = %d, expected 0", q.Held())
	}
}

func TestKeyQueueReleaseOrder(t *testing.T) {
	q := newKeyQueue(10 * time.Millisecond)
	t0 := time.Unix(0, 0)
	q.Press('z', t0)
	q.Press('b', t0)
	q.Pop()
	q.Pop()

	q.ReleaseAll()
	if v := q.Pop(); v != 'b' {
		t.Errorf("first release = %#x, expected 'b'", v)
	}
	if v := q.Pop(); v != 'z' {
		t.Errorf("second release = %#x, expected 'z'", v)
	}
}

func TestKeyQueueDefaultRelease(t *testing.T) {
	q := newKeyQueue(0)
	if q.release <= 0 {
		t.Error("expected a positive default release delay")
	}
}
