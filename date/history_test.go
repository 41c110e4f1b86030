package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	d := New(2025, 1, 2)
	h.Append(d, 1).Append(d, 2)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d want 1", h.Len())
	}
	if v, ok := h.Get(d); !ok || v != 2 {
		t.Errorf("Get(%v) = %v, %v want 2, true", d, v, ok)
	}
}

func TestTail(t *testing.T) {
	h := new(History[float64])
	for i := range 5 {
		h.Append(New(2025, 1, 1+i), float64(i))
	}

	tail := h.Tail(3)
	if tail.Len() != 3 {
		t.Fatalf("Tail(3).Len() = %d want 3", tail.Len())
	}
	if v, ok := tail.Get(New(2025, 1, 5)); !ok || v != 4 {
		t.Errorf("Tail(3).Get(2025-01-05) = %v, %v want 4, true", v, ok)
	}
	if _, ok := tail.Get(New(2025, 1, 2)); ok {
		t.Errorf("Tail(3) holds 2025-01-02")
	}
	if got := h.Tail(10).Len(); got != 5 {
		t.Errorf("Tail(10).Len() = %d want 5", got)
	}
	// Tail must not alias the original storage.
	tail.Append(New(2025, 1, 3), 42)
	if v, _ := h.Get(New(2025, 1, 3)); v != 2 {
		t.Errorf("original modified through Tail: got %v want 2", v)
	}
}

func TestBetween(t *testing.T) {
	h := new(History[float64])
	for i := range 10 {
		h.Append(New(2025, 1, 1+i), float64(i))
	}
	got := h.Between(NewRange(New(2025, 1, 3), New(2025, 1, 5)))
	if got.Len() != 3 {
		t.Errorf("Between().Len() = %d want 3", got.Len())
	}
}
