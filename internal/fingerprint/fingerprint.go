// Package fingerprint computes perceptual hashes of face images and groups
// saved faces whose images are near-duplicates of each other.
package fingerprint

import (
	"fmt"
	"image"
	"math"
	"math/bits"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/kozaktomas/name-that-face/internal/face"
)

// DefaultThreshold is the Hamming distance at or below which two images count
// as the same picture (re-encoded, resized or lightly edited).
const DefaultThreshold = 6

// Hash holds the two 64-bit hashes of one image.
type Hash struct {
	Perceptual uint64 // DCT based
	Difference uint64 // gradient based
}

func (h Hash) String() string {
	return fmt.Sprintf("%016x:%016x", h.Perceptual, h.Difference)
}

// Distance returns the larger of the two Hamming distances, so both hashes
// have to agree before images are reported as duplicates.
func (h Hash) Distance(other Hash) int {
	return max(
		bits.OnesCount64(h.Perceptual^other.Perceptual),
		bits.OnesCount64(h.Difference^other.Difference),
	)
}

// Of hashes an encoded image. It fails with *face.ImageDecodeError when the
// bytes do not decode.
func Of(data []byte) (Hash, error) {
	img, _, err := face.DecodeImage(data)
	if err != nil {
		return Hash{}, err
	}
	return Hash{
		Perceptual: perceptual(img),
		Difference: difference(img),
	}, nil
}

// Group is a set of faces whose images are near-duplicates.
type Group struct {
	Faces []face.Face
}

// IDs returns the ids of the group's faces.
func (g Group) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(g.Faces))
	for i, f := range g.Faces {
		ids[i] = f.ID
	}
	return ids
}

// Duplicates groups faces whose hashes are within threshold of each other.
// Faces whose image does not decode are skipped. Groups keep the input
// order, which for a store listing is by name.
func Duplicates(faces []face.Face, threshold int) []Group {
	type hashed struct {
		f    face.Face
		hash Hash
	}
	var items []hashed
	for _, f := range faces {
		h, err := Of(f.Image)
		if err != nil {
			continue
		}
		items = append(items, hashed{f: f, hash: h})
	}

	// union-find over the pairwise matches
	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].hash.Distance(items[j].hash) <= threshold {
				a, b := find(i), find(j)
				if a != b {
					parent[max(a, b)] = min(a, b)
				}
			}
		}
	}

	members := make(map[int][]face.Face)
	var roots []int
	for i, it := range items {
		r := find(i)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], it.f)
	}

	var groups []Group
	for _, r := range roots {
		if len(members[r]) > 1 {
			groups = append(groups, Group{Faces: members[r]})
		}
	}
	return groups
}

// perceptual keeps the sign of the lowest 8x8 DCT frequencies of a 32x32
// grayscale copy relative to their median.
func perceptual(img image.Image) uint64 {
	const size, keep = 32, 8
	gray := grayscale(img, size, size)

	var cos [keep][size]float64
	for u := range keep {
		for x := range size {
			cos[u][x] = math.Cos(math.Pi * float64(u) * (2*float64(x) + 1) / (2 * size))
		}
	}

	// separable DCT-II, only the rows and columns that are kept
	var rows [size][keep]float64
	for y := range size {
		for v := range keep {
			var sum float64
			for x := range size {
				sum += gray[y][x] * cos[v][x]
			}
			rows[y][v] = sum
		}
	}
	coeffs := make([]float64, 0, keep*keep)
	for u := range keep {
		for v := range keep {
			var sum float64
			for y := range size {
				sum += rows[y][v] * cos[u][y]
			}
			coeffs = append(coeffs, sum)
		}
	}

	// the DC term only carries overall brightness
	median := medianOf(coeffs[1:])
	var hash uint64
	for i, c := range coeffs {
		if i > 0 && c > median {
			hash |= 1 << (63 - i)
		}
	}
	return hash
}

// difference compares horizontally adjacent pixels of a 9x8 grayscale copy.
func difference(img image.Image) uint64 {
	gray := grayscale(img, 9, 8)
	var hash uint64
	bit := 63
	for y := range 8 {
		for x := range 8 {
			if gray[y][x] > gray[y][x+1] {
				hash |= 1 << bit
			}
			bit--
		}
	}
	return hash
}

// grayscale scales img to width x height and returns BT.601 luma values
// indexed [y][x].
func grayscale(img image.Image, width, height int) [][]float64 {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	out := make([][]float64, height)
	for y := range height {
		out[y] = make([]float64, width)
		for x := range width {
			p := dst.RGBAAt(x, y)
			out[y][x] = 0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)
		}
	}
	return out
}

func medianOf(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
