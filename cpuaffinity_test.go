package roitrack

import (
	"reflect"
	"testing"
)

func TestParseCoreList(t *testing.T) {

	tests := []struct {
		list    string
		want    []int
		wantErr bool
	}{
		{"4", []int{4}, false},
		{"0,2,4-7", []int{0, 2, 4, 5, 6, 7}, false},
		{" 1 , 3 ", []int{1, 3}, false},
		{"", nil, true},
		{"x", nil, true},
		{"5-3", nil, true},
		{"-1", nil, true},
		{"0-128", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseCoreList(tt.list)

		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tt.list, got)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.list, err)
			continue
		}

		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.list, tt.want, got)
		}
	}
}

func TestCPUCoreMask(t *testing.T) {

	if mask := CPUCoreMask([]int{4, 5, 6, 7}); mask != 0xf0 {
		t.Errorf("expected mask 0xf0, got %#x", mask)
	}

	if mask := CPUCoreMask(nil); mask != 0 {
		t.Errorf("expected empty mask, got %#x", mask)
	}
}

func TestCPUAffinityRoundTrip(t *testing.T) {

	mask, err := GetCPUAffinity()

	if err != nil {
		t.Skipf("affinity not available: %v", err)
	}

	if mask == 0 {
		t.Fatalf("expected at least one core in the current mask")
	}

	if err := SetCPUAffinity(mask); err != nil {
		t.Fatalf("SetCPUAffinity failed: %v", err)
	}

	if got, err := GetCPUAffinity(); err != nil || got != mask {
		t.Errorf("expected mask %#x, got %#x (%v)", mask, got, err)
	}
}
