package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ayush9889/score-wise/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new in-memory deduper", t, func() {
		ctx := context.Background()

		Convey("When recording a match id for the first time", func() {
			d := dedupe.NewInMemoryDeduper()
			seen := d.SeenAndRecord(ctx, "m1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And the second sighting is a duplicate", func() {
				So(d.SeenAndRecord(ctx, "m1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "m1")
			d.Unrecord(ctx, "m1")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "m1"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording an unknown id is harmless", func() {
				d.Unrecord(ctx, "never-seen")
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the window overflows", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 4; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("m%d", i))
			}

			Convey("Then the oldest id is evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "m0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "m3"), ShouldBeTrue)
			})
		})

		Convey("When hammered concurrently with the same id", func() {
			d := dedupe.NewInMemoryDeduper()

			const goroutines = 50
			var wg sync.WaitGroup
			fresh := make(chan bool, goroutines)
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "m1") {
						fresh <- true
					}
				}()
			}
			wg.Wait()
			close(fresh)

			Convey("Then exactly one caller wins", func() {
				So(len(fresh), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
