package patterns

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/julianstephens/dayshape/internal/constants"
)

var (
	ErrTooFewPoints = errors.New("fewer points than groups")
	ErrBadInput     = errors.New("invalid feature vectors")
)

// Grouper partitions points into k groups and returns one label per point.
// Labels are in 0..k-1; a group may end up empty.
type Grouper interface {
	Group(points [][]float64, k int) ([]int, error)
}

// KMeans is Lloyd's algorithm with k-means++ seeding. It is deterministic for
// a given Seed: restarts draw from one seeded source in sequence.
type KMeans struct {
	Restarts  int
	MaxIter   int
	Tolerance float64
	Seed      uint64
}

func NewKMeans() *KMeans {
	return &KMeans{
		Restarts:  constants.KMeansRestarts,
		MaxIter:   constants.KMeansMaxIter,
		Tolerance: constants.KMeansTolerance,
		Seed:      constants.KMeansSeed,
	}
}

func (km *KMeans) Group(points [][]float64, k int) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", ErrBadInput, k)
	}
	if len(points) < k {
		return nil, fmt.Errorf("%w: %d points for %d groups", ErrTooFewPoints, len(points), k)
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}

	restarts := max(km.Restarts, 1)
	maxIter := max(km.MaxIter, 1)
	rng := rand.New(rand.NewPCG(km.Seed, km.Seed))

	var best []int
	bestInertia := math.Inf(1)
	for range restarts {
		labels, inertia := km.run(points, k, maxIter, rng)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return best, nil
}

func (km *KMeans) run(points [][]float64, k, maxIter int, rng *rand.Rand) ([]int, float64) {
	centroids := seedCentroids(points, k, rng)
	labels := make([]int, len(points))

	for range maxIter {
		assign(points, centroids, labels)

		shift := 0.0
		for c := range centroids {
			next, ok := mean(points, labels, c)
			if !ok {
				// empty group keeps its centroid
				continue
			}
			d := floats.Distance(centroids[c], next, 2)
			shift += d * d
			centroids[c] = next
		}
		if shift <= km.Tolerance {
			break
		}
	}

	assign(points, centroids, labels)
	return labels, inertia(points, centroids, labels)
}

// seedCentroids picks k starting centroids with k-means++: each next centroid is
// drawn with probability proportional to its squared distance from the nearest
// centroid chosen so far.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.IntN(len(points))]))

	dist := make([]float64, len(points))
	for len(centroids) < k {
		for i, p := range points {
			dist[i] = nearestSq(p, centroids)
		}
		total := floats.Sum(dist)
		if total == 0 {
			// all points coincide with a centroid
			centroids = append(centroids, clone(points[rng.IntN(len(points))]))
			continue
		}

		target := rng.Float64() * total
		pick := len(points) - 1
		acc := 0.0
		for i, d := range dist {
			acc += d
			if acc >= target && d > 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, clone(points[pick]))
	}
	return centroids
}

// assign labels every point with its nearest centroid; ties go to the lower index.
func assign(points, centroids [][]float64, labels []int) {
	for i, p := range points {
		bestC, bestD := 0, math.Inf(1)
		for c, centroid := range centroids {
			d := floats.Distance(p, centroid, 2)
			if d < bestD {
				bestC, bestD = c, d
			}
		}
		labels[i] = bestC
	}
}

func mean(points [][]float64, labels []int, c int) ([]float64, bool) {
	sum := make([]float64, len(points[0]))
	n := 0
	for i, p := range points {
		if labels[i] == c {
			floats.Add(sum, p)
			n++
		}
	}
	if n == 0 {
		return nil, false
	}
	floats.Scale(1/float64(n), sum)
	return sum, true
}

func inertia(points, centroids [][]float64, labels []int) float64 {
	total := 0.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		total += d * d
	}
	return total
}

func nearestSq(p []float64, centroids [][]float64) float64 {
	best := math.Inf(1)
	for _, c := range centroids {
		d := floats.Distance(p, c, 2)
		best = math.Min(best, d*d)
	}
	return best
}

func validatePoints(points [][]float64) error {
	dim := len(points[0])
	if dim == 0 {
		return fmt.Errorf("%w: empty feature vector", ErrBadInput)
	}
	for i, p := range points {
		if len(p) != dim {
			return fmt.Errorf("%w: point %d has %d features, want %d", ErrBadInput, i, len(p), dim)
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: point %d is not finite", ErrBadInput, i)
			}
		}
	}
	return nil
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
