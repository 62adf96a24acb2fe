package overs_test

import (
	"testing"

	"github.com/ayush9889/score-wise/internal/domain/overs"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOvers(t *testing.T) {
	Convey("Given an overs value", t, func() {
		Convey("When converting from legal balls", func() {
			o := overs.FromLegalBalls(93)

			So(o.Completed, ShouldEqual, 15)
			So(o.Balls, ShouldEqual, 3)
			So(o.String(), ShouldEqual, "15.3")
			So(o.TotalBalls(), ShouldEqual, 93)
		})

		Convey("When expressing overs for rate math", func() {
			So(overs.FromLegalBalls(93).Float(), ShouldEqual, 15.5)
			So(overs.FromLegalBalls(0).Float(), ShouldEqual, 0)
			So(overs.FromLegalBalls(12).Float(), ShouldEqual, 2)
		})
	})
}

func TestState(t *testing.T) {
	Convey("Given an over state", t, func() {
		var s overs.State

		Convey("When legal deliveries are bowled", func() {
			for i := 0; i < 5; i++ {
				So(s.OnDelivery(true), ShouldBeFalse)
			}

			Convey("Then the sixth completes the over", func() {
				So(s.OnDelivery(true), ShouldBeTrue)
				So(s.Overs().String(), ShouldEqual, "1.0")
				So(s.MidOver(), ShouldBeFalse)
			})
		})

		Convey("When illegal deliveries are bowled", func() {
			s.OnDelivery(true)

			Convey("Then they never advance the over", func() {
				for i := 0; i < 10; i++ {
					So(s.OnDelivery(false), ShouldBeFalse)
				}
				So(s.LegalBalls, ShouldEqual, 1)
				So(s.MidOver(), ShouldBeTrue)
			})
		})
	})
}

func TestRotatesOnRuns(t *testing.T) {
	Convey("Given the strike rotation rule", t, func() {
		Convey("Then odd runs cross the batsmen and even runs do not", func() {
			So(overs.RotatesOnRuns(0), ShouldBeFalse)
			So(overs.RotatesOnRuns(1), ShouldBeTrue)
			So(overs.RotatesOnRuns(2), ShouldBeFalse)
			So(overs.RotatesOnRuns(3), ShouldBeTrue)
			So(overs.RotatesOnRuns(4), ShouldBeFalse)
			So(overs.RotatesOnRuns(6), ShouldBeFalse)
		})
	})
}
