package events

import "testing"

func TestUpdateValid(t *testing.T) {
	for _, u := range []Update{DoNothing, RefreshPaint, RegenerateDom, RegenerateAllDoms} {
		if !u.Valid() {
			t.Errorf("%v should be valid", u)
		}
	}
	for _, u := range []Update{Update(-1), Update(4), Update(42)} {
		if u.Valid() {
			t.Errorf("%d should be invalid", u)
		}
	}
}

func TestCombineOrdersByWork(t *testing.T) {
	cases := []struct {
		a, b, want Update
	}{
		{DoNothing, DoNothing, DoNothing},
		{DoNothing, RefreshPaint, RefreshPaint},
		{RefreshPaint, RegenerateDom, RegenerateDom},
		{RegenerateAllDoms, RefreshPaint, RegenerateAllDoms},
		{RegenerateDom, DoNothing, RegenerateDom},
	}
	for _, tc := range cases {
		if got := Combine(tc.a, tc.b); got != tc.want {
			t.Errorf("Combine(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := Combine(tc.b, tc.a); got != tc.want {
			t.Errorf("Combine(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestKindStrings(t *testing.T) {
	if KindMouseDown.String() != "mouse_down" {
		t.Errorf("unexpected string: %s", KindMouseDown)
	}
	if Kind(99).String() != "none" {
		t.Errorf("out-of-range kind should stringify as none, got %s", Kind(99))
	}
}
