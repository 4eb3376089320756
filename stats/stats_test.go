package stats_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/wrestleapi/outcome"
	"github.com/padraicbc/wrestleapi/rounds"
	"github.com/padraicbc/wrestleapi/stats"
)

func flag(b bool) *bool { return &b }
func num(n int) *int    { return &n }

func classified(id, round string, self, opp outcome.Side, hasOpp bool) stats.Bout {
	var o outcome.Outcome
	if hasOpp {
		o = outcome.Classify(self, &opp)
	} else {
		o = outcome.Classify(self, nil)
	}
	return stats.Bout{MatchID: id, PersonID: self.PersonID, Round: round, RoundRank: rounds.Rank(round), Outcome: o}
}

func TestAggregate(t *testing.T) {
	Convey("Given a wrestler with a tech fall, a loss and a pin", t, func() {
		bouts := []stats.Bout{
			classified("m1", "champ 32",
				outcome.Side{ParticipantID: "a", IsWinner: flag(true), Score: num(20)},
				outcome.Side{ParticipantID: "b", IsWinner: flag(false), Score: num(0)}, true),
			classified("m2", "champ 16",
				outcome.Side{ParticipantID: "a", IsWinner: flag(false)},
				outcome.Side{ParticipantID: "c", IsWinner: flag(true)}, true),
			classified("m3", "consi 16 #1",
				outcome.Side{ParticipantID: "a", IsWinner: flag(true), ResultType: "fall"},
				outcome.Side{ParticipantID: "d", IsWinner: flag(false)}, true),
		}

		s := stats.Aggregate("p1", bouts)

		Convey("Counts follow the classified outcomes", func() {
			So(s.PersonID, ShouldEqual, "p1")
			So(s.MatchCount, ShouldEqual, 3)
			So(s.Wins, ShouldEqual, 2)
			So(s.Losses, ShouldEqual, 1)
			So(s.Pins, ShouldEqual, 1)
			So(s.TechnicalFalls, ShouldEqual, 1)
			So(s.MajorDecisions, ShouldEqual, 0)
			So(s.WinPercentage, ShouldEqual, 66.7)
			So(s.AllAmerican, ShouldBeFalse)
		})
	})

	Convey("Given a match missing its opposing side", t, func() {
		bouts := []stats.Bout{
			classified("m1", "1st",
				outcome.Side{ParticipantID: "a", IsWinner: flag(true), Score: num(3)},
				outcome.Side{ParticipantID: "b", IsWinner: flag(false), Score: num(1)}, true),
			classified("m2", "3rd", outcome.Side{ParticipantID: "a", IsWinner: flag(true), ResultType: "fall"}, outcome.Side{}, false),
		}
		s := stats.Aggregate("p1", bouts)

		Convey("It counts as a match but not as a win, loss or method", func() {
			So(s.MatchCount, ShouldEqual, 2)
			So(s.Wins, ShouldEqual, 1)
			So(s.Losses, ShouldEqual, 0)
			So(s.Unresolved, ShouldEqual, 1)
			So(s.Pins, ShouldEqual, 0)
			So(s.Decisions, ShouldEqual, 1)
			So(s.Wins+s.Losses, ShouldBeLessThanOrEqualTo, s.MatchCount)
		})

		Convey("Placement rounds count regardless of the result", func() {
			So(s.AllAmericanCount, ShouldEqual, 2)
			So(s.AllAmerican, ShouldBeTrue)
		})
	})

	Convey("Given no matches", t, func() {
		s := stats.Aggregate("p2", nil)
		So(s.MatchCount, ShouldEqual, 0)
		So(s.WinPercentage, ShouldEqual, 0.0)
	})
}

func TestAggregateSchool(t *testing.T) {
	Convey("Given bouts from two wrestlers over two years", t, func() {
		y1, y2 := 2019, 2021
		win := outcome.Outcome{Result: outcome.Win}
		loss := outcome.Outcome{Result: outcome.Loss}
		bouts := []stats.Bout{
			{MatchID: "m1", PersonID: "p1", Year: &y1, Outcome: win},
			{MatchID: "m2", PersonID: "p1", Year: &y2, Outcome: loss},
			{MatchID: "m3", PersonID: "p2", Year: &y2, Outcome: win},
			{MatchID: "m4", PersonID: "p2", Year: &y2, Outcome: outcome.Outcome{Result: outcome.Unknown}},
		}
		s := stats.AggregateSchool("s1", bouts)

		So(s.TotalWrestlers, ShouldEqual, 2)
		So(s.MatchCount, ShouldEqual, 4)
		So(s.Wins, ShouldEqual, 2)
		So(s.Losses, ShouldEqual, 1)
		So(s.Unresolved, ShouldEqual, 1)
		So(s.YearsActive, ShouldEqual, 2)
		So(*s.FirstYear, ShouldEqual, 2019)
		So(*s.LastYear, ShouldEqual, 2021)
		So(s.WinPercentage, ShouldEqual, 50.0)
	})
}

func TestPercentage(t *testing.T) {
	Convey("Percentages stay within bounds", t, func() {
		So(stats.Percentage(0, 0), ShouldEqual, 0.0)
		So(stats.Percentage(1, 3), ShouldEqual, 33.3)
		So(stats.Percentage(5, 5), ShouldEqual, 100.0)
	})
}
