package tempname_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/prestahub/psnew/pkg/utils/tempname"
)

func TestGenerator_Deterministic(t *testing.T) {
	fixed := time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)
	g := tempname.New("psnew",
		tempname.WithClock(func() time.Time { return fixed }),
		tempname.WithTokenSource(func() string { return "abcd1234" }),
	)

	gt.Equal(t, g.Next(".zip"), "psnew-20260831123456-abcd1234.zip")
	gt.Equal(t, g.Next(""), "psnew-20260831123456-abcd1234")
}

func TestGenerator_DefaultUniqueness(t *testing.T) {
	g := tempname.New("psnew")

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := g.Next("")
		if seen[name] {
			t.Fatalf("duplicate temp name generated: %s", name)
		}
		seen[name] = true
	}
}
