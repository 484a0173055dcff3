package rooms

import "testing"

func TestCreateReturnsUniqueValidIDs(t *testing.T) {
	r := NewRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.Create()
		if id == "" {
			t.Fatal("Create() returned empty id")
		}
		if seen[id] {
			t.Fatalf("Create() returned duplicate id %s", id)
		}
		seen[id] = true
		if !r.Exists(id) {
			t.Errorf("Exists(%s) = false immediately after Create()", id)
		}
	}
}

func TestExistsUnknownID(t *testing.T) {
	r := NewRegistry()
	if r.Exists("no-such-room") {
		t.Error("Exists() = true for an id that was never created")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	id := r.Create()

	r.Remove(id)
	if r.Exists(id) {
		t.Errorf("Exists(%s) = true after Remove()", id)
	}

	// Removing twice must be a no-op, not a panic or error.
	r.Remove(id)
	r.Remove("never-existed")
}

func TestCreatedAt(t *testing.T) {
	r := NewRegistry()
	id := r.Create()

	if ts, ok := r.CreatedAt(id); !ok || ts.IsZero() {
		t.Errorf("CreatedAt(%s) = %v, %v, want a non-zero time and ok", id, ts, ok)
	}
	if _, ok := r.CreatedAt("no-such-room"); ok {
		t.Error("CreatedAt() ok = true for unknown id")
	}
}

func TestListAll(t *testing.T) {
	r := NewRegistry()
	a := r.Create()
	b := r.Create()
	r.Remove(a)

	ids := r.ListAll()
	if len(ids) != 1 {
		t.Fatalf("ListAll() returned %d ids, want 1", len(ids))
	}
	if ids[0] != b {
		t.Errorf("ListAll() = %v, want [%s]", ids, b)
	}
}
