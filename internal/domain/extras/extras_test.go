package extras_test

import (
	"errors"
	"testing"

	"github.com/ayush9889/score-wise/internal/domain/extras"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the delivery classifier", t, func() {
		Convey("When classifying a plain delivery", func() {
			c, err := extras.Classify(2, false, false, false, false)

			Convey("Then the runs belong to the batsman", func() {
				So(err, ShouldBeNil)
				So(c.BatsmanRuns, ShouldEqual, 2)
				So(c.Extras.Total(), ShouldEqual, 0)
				So(c.Legal, ShouldBeTrue)
				So(c.BallFaced, ShouldBeTrue)
				So(c.TeamRuns(), ShouldEqual, 2)
			})
		})

		Convey("When classifying a boundary", func() {
			four, _ := extras.Classify(4, false, false, false, false)
			six, _ := extras.Classify(6, false, false, false, false)

			Convey("Then fours and sixes are recognized", func() {
				So(four.Four, ShouldBeTrue)
				So(four.Six, ShouldBeFalse)
				So(six.Six, ShouldBeTrue)
				So(six.Four, ShouldBeFalse)
			})

			Convey("And a boundary off a no-ball is not recognized", func() {
				c, err := extras.Classify(4, false, true, false, false)
				So(err, ShouldBeNil)
				So(c.Four, ShouldBeFalse)
				So(c.BatsmanRuns, ShouldEqual, 4)
			})
		})

		Convey("When classifying a wide", func() {
			c, err := extras.Classify(2, true, false, false, false)

			Convey("Then the penalty and all runs go to extras", func() {
				So(err, ShouldBeNil)
				So(c.BatsmanRuns, ShouldEqual, 0)
				So(c.Extras.Wides, ShouldEqual, 3)
				So(c.TeamRuns(), ShouldEqual, 3)
			})

			Convey("And the delivery is neither legal nor a ball faced", func() {
				So(c.Legal, ShouldBeFalse)
				So(c.BallFaced, ShouldBeFalse)
			})
		})

		Convey("When classifying a no-ball", func() {
			Convey("And the runs were hit by the batsman", func() {
				c, err := extras.Classify(2, false, true, false, false)

				So(err, ShouldBeNil)
				So(c.BatsmanRuns, ShouldEqual, 2)
				So(c.Extras.NoBalls, ShouldEqual, 1)
				So(c.TeamRuns(), ShouldEqual, 3)
				So(c.Legal, ShouldBeFalse)
				So(c.BallFaced, ShouldBeTrue)
			})

			Convey("And the runs were byes", func() {
				c, err := extras.Classify(2, false, true, true, false)

				So(err, ShouldBeNil)
				So(c.BatsmanRuns, ShouldEqual, 0)
				So(c.Extras.NoBalls, ShouldEqual, 1)
				So(c.Extras.Byes, ShouldEqual, 2)
				So(c.TeamRuns(), ShouldEqual, 3)
				So(c.Legal, ShouldBeFalse)
			})
		})

		Convey("When classifying byes and leg-byes", func() {
			bye, errB := extras.Classify(1, false, false, true, false)
			legBye, errL := extras.Classify(3, false, false, false, true)

			Convey("Then the runs are extras on a legal delivery", func() {
				So(errB, ShouldBeNil)
				So(bye.Extras.Byes, ShouldEqual, 1)
				So(bye.BatsmanRuns, ShouldEqual, 0)
				So(bye.Legal, ShouldBeTrue)
				So(bye.BallFaced, ShouldBeTrue)

				So(errL, ShouldBeNil)
				So(legBye.Extras.LegByes, ShouldEqual, 3)
				So(legBye.Legal, ShouldBeTrue)
			})
		})

		Convey("When the delivery intent is malformed", func() {
			Convey("Then negative runs are rejected", func() {
				_, err := extras.Classify(-1, false, false, false, false)
				So(errors.Is(err, extras.ErrNegativeRuns), ShouldBeTrue)
			})

			Convey("Then a wide combined with any other extra is rejected", func() {
				_, err := extras.Classify(0, true, true, false, false)
				So(errors.Is(err, extras.ErrExtraCombination), ShouldBeTrue)

				_, err = extras.Classify(0, true, false, true, false)
				So(errors.Is(err, extras.ErrExtraCombination), ShouldBeTrue)
			})

			Convey("Then bye combined with leg-bye is rejected", func() {
				_, err := extras.Classify(1, false, false, true, true)
				So(errors.Is(err, extras.ErrExtraCombination), ShouldBeTrue)
			})
		})
	})
}

func TestBreakdown(t *testing.T) {
	Convey("Given an extras breakdown", t, func() {
		b := extras.Breakdown{Wides: 2, NoBalls: 1, Byes: 4, LegByes: 3}

		Convey("Then Total sums every bucket", func() {
			So(b.Total(), ShouldEqual, 10)
		})

		Convey("When accumulating another breakdown", func() {
			b.Add(extras.Breakdown{Wides: 1, LegByes: 2})

			So(b.Wides, ShouldEqual, 3)
			So(b.LegByes, ShouldEqual, 5)
			So(b.Total(), ShouldEqual, 13)
		})
	})
}
