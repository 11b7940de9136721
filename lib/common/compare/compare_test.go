package compare

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type pair struct {
	date time.Time
	line int
}

func TestCombineSort(t *testing.T) {
	var (
		d1 = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
		d2 = time.Date(2013, 2, 1, 0, 0, 0, 0, time.UTC)
		ps = []pair{{d2, 1}, {d1, 7}, {d1, 3}, {d2, 0}}
	)

	Sort(ps, Combine(
		By(func(p pair) time.Time { return p.date }, Time),
		By(func(p pair) int { return p.line }, Ordered[int]),
	))

	want := []pair{{d1, 3}, {d1, 7}, {d2, 0}, {d2, 1}}
	if diff := cmp.Diff(want, ps, cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}
