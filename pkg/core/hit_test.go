package core

import (
	"math"
	"testing"
)

func TestMiss(t *testing.T) {
	miss := Miss()
	if !miss.IsMiss() {
		t.Fatal("Expected Miss() to be a miss")
	}
	if !math.IsInf(miss.T, 1) {
		t.Errorf("Expected T=+Inf, got %f", miss.T)
	}
	if miss.Normal != (Vec3{}) || miss.Point != (Vec3{}) {
		t.Errorf("Expected zero normal and point, got %v %v", miss.Normal, miss.Point)
	}
}

func TestHit_IsMiss(t *testing.T) {
	if NewHit(1e30, NewVec3(0, 1, 0), NewVec3(0, 0, 0)).IsMiss() {
		t.Error("Large finite t is not a miss")
	}
	if NewHit(math.Inf(-1), Vec3{}, Vec3{}).IsMiss() {
		t.Error("-Inf is not the miss sentinel")
	}
}

func TestHit_Update(t *testing.T) {
	near := NewHit(1.5, NewVec3(0, 0, 1), NewVec3(0, 0, 1))
	far := NewHit(4.0, NewVec3(1, 0, 0), NewVec3(2, 0, 0))

	tests := []struct {
		name      string
		start     Hit
		candidate Hit
		expected  Hit
	}{
		{"hit replaces miss", Miss(), near, near},
		{"miss keeps hit", near, Miss(), near},
		{"miss keeps miss", Miss(), Miss(), Miss()},
		{"nearer replaces farther", far, near, near},
		{"farther keeps nearer", near, far, near},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.start
			h.Update(tt.candidate)
			if h.IsMiss() != tt.expected.IsMiss() {
				t.Fatalf("Expected miss=%t, got %t", tt.expected.IsMiss(), h.IsMiss())
			}
			if !h.IsMiss() && h != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, h)
			}
		})
	}
}

func TestHit_UpdateFoldsToNearest(t *testing.T) {
	candidates := []Hit{
		NewHit(7, NewVec3(0, 1, 0), NewVec3(0, 7, 0)),
		Miss(),
		NewHit(2, NewVec3(0, 0, 1), NewVec3(0, 0, 2)),
		NewHit(3, NewVec3(1, 0, 0), NewVec3(3, 0, 0)),
		Miss(),
	}

	hit := Miss()
	for _, c := range candidates {
		hit.Update(c)
	}

	if hit.T != 2 {
		t.Errorf("Expected nearest t=2, got %f", hit.T)
	}
}
