package face

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Amy", "Zed", -1},
		{"amy", "Zed", -1},
		{"Zed", "amy", 1},
		{"Bo", "bo", 0},
		{"Émile", "émile", 0},
	}
	for _, tt := range tests {
		if got := CompareNames(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareNames(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_NameThenID(t *testing.T) {
	low := Face{ID: uuid.MustParse("00000000-0000-4000-8000-000000000001"), Name: "bo"}
	high := Face{ID: uuid.MustParse("ffffffff-0000-4000-8000-000000000001"), Name: "Bo"}
	zed := Face{ID: uuid.MustParse("00000000-0000-4000-8000-000000000000"), Name: "Zed"}
	amy := Face{ID: uuid.MustParse("ffffffff-ffff-4fff-bfff-ffffffffffff"), Name: "amy"}

	faces := []Face{zed, high, amy, low}
	slices.SortFunc(faces, Compare)

	want := []Face{amy, low, high, zed}
	for i := range want {
		if !faces[i].Equal(want[i]) {
			t.Fatalf("position %d: got %q (%s), want %q (%s)", i, faces[i].Name, faces[i].ID, want[i].Name, want[i].ID)
		}
	}
}
