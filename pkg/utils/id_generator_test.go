package utils

import (
	"testing"
)

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if _, dup := seen[id]; dup {
			t.Fatalf("GenerateID returned duplicate %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "generated", in: GenerateID(), want: true},
		{name: "empty", in: "", want: false},
		{name: "garbage", in: "str", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsID(tt.in); got != tt.want {
				t.Errorf("IsID(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID()
	}
}
