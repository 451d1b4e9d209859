package utils

import (
	"math/rand"
	"testing"
)

func Test_FindTopN(t *testing.T) {
	array := []float64{0.5, 3, 1, 7, 2, 7, 0}
	top := FindTopNInArray(array, 3)
	assertEqual(t, 3, len(top), "count")
	assertEqual(t, float64(7), top[0].Second, "first")
	assertEqual(t, float64(7), top[1].Second, "second")
	assertEqual(t, float64(3), top[2].Second, "third")

	// Request beyond the array size clips.
	all := FindTopNInArray(array, 100)
	assertEqual(t, len(array), len(all), "clipped")
	for i := 1; i < len(all); i++ {
		if all[i-1].Second < all[i].Second {
			t.Fatal("not descending at ", i)
		}
	}
}

func Test_FindTopNRandom(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	array := make([]int64, 1000)
	for i := range array {
		array[i] = int64(r.Intn(1 << 20))
	}
	top := FindTopNInArray(array, 10)
	worst := top[len(top)-1].Second
	beaten := 0
	for i := range array {
		if array[i] > worst {
			beaten++
		}
	}
	if beaten > 9 {
		t.Fatal("more than nine values beat the tenth best")
	}
}
