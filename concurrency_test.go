package strictjson_test

import (
	"fmt"
	"testing"

	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	sj "github.com/reoring/strictjson"
)

func TestConcurrentCallsDoNotShareState(t *testing.T) {
	defer goleak.VerifyNone(t)

	const doc = `{"a":[1,{"b":[2,3]}],"c":"x"}`
	want := "{\n  \"a\": [\n    1,\n    {\n      \"b\": [\n        2,\n        3\n      ]\n    }\n  ],\n  \"c\": \"x\"\n}"

	var g errgroup.Group
	g.SetLimit(8)
	for i := 0; i < 64; i++ {
		i := i
		g.Go(func() error {
			if i%3 == 0 {
				if _, err := sj.Parse(`{"a":1,"a":2}`); err == nil {
					return fmt.Errorf("worker %d: expected duplicate key error", i)
				}
				return nil
			}
			v, err := sj.Parse(doc)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			got, _ := sj.Stringify(v, 2)
			if got != want {
				return fmt.Errorf("worker %d: got %q", i, got)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
