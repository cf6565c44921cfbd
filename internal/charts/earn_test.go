package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"kasa/internal/core"
)

func buckets(n int) []core.MonthBucket {
	out := make([]core.MonthBucket, n)
	for i := range out {
		out[i] = core.MonthBucket{
			Year:  2024,
			Month: time.Month(i + 1),
			Sums:  map[string]float64{"Зарплата": float64(1000 * (i + 1))},
		}
	}
	return out
}

func TestEarnTrendRendersPNG(t *testing.T) {
	png, err := EarnTrend(buckets(3), []string{"Зарплата"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
}

func TestEarnTrendNotEnoughData(t *testing.T) {
	if _, err := EarnTrend(buckets(1), []string{"Зарплата"}); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("single bucket: got %v", err)
	}
	if _, err := EarnTrend(buckets(3), nil); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("no categories: got %v", err)
	}
}
