package cmd

import "testing"

func TestResolveClient(t *testing.T) {
	clients := []string{"Alice", "José García", "Łukasz"}

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"alice", "Alice", true},
		{"ALICE", "Alice", true},
		{"jose garcia", "José García", true},
		{"José GARCÍA", "José García", true},
		{" alice ", "Alice", true},
		{"nobody", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveClient(clients, tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("resolveClient(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeClient(t *testing.T) {
	if got := normalizeClient("  Ça Déjà Vu  "); got != "ca deja vu" {
		t.Errorf("normalizeClient() = %q, want %q", got, "ca deja vu")
	}
}
