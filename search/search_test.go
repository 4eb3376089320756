package search_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/wrestleapi/search"
)

func TestScore(t *testing.T) {
	Convey("Given the relevance ladder", t, func() {
		So(search.Score("Spencer Lee", "Spencer Lee"), ShouldEqual, search.ScoreExact)
		So(search.Score("Spencer Lee", "spencer lee"), ShouldEqual, search.ScoreExact)
		So(search.Score("Spencer Lee", "Spencer"), ShouldEqual, search.ScorePrefix)
		So(search.Score("Spencer Lee Jr", "Lee"), ShouldEqual, search.ScoreWord)
		So(search.Score("Spencer Lee", "enc"), ShouldEqual, search.ScoreSubstring)
		So(search.Score("Spencer Lee", "xyz"), ShouldEqual, 0.0)
		So(search.Score("", "lee"), ShouldEqual, 0.0)
		So(search.Score("Lee", ""), ShouldEqual, 0.0)

		Convey("A prefix must end on a word boundary", func() {
			So(search.Score("Leeward School", "lee"), ShouldEqual, search.ScoreSubstring)
			So(search.Score("Lee Academy", "lee"), ShouldEqual, search.ScorePrefix)
		})

		Convey("Accented letters are word characters for both boundary rules", func() {
			So(search.Score("José Núñez", "jos"), ShouldEqual, search.ScoreSubstring)
			So(search.Score("José Núñez", "josé"), ShouldEqual, search.ScorePrefix)
			So(search.Score("Martín Núñez", "núñez"), ShouldEqual, search.ScoreWord)
			So(search.Score("Martín Núñez", "ez"), ShouldEqual, search.ScoreSubstring)
			So(search.Score("Martín Núñez", "mart"), ShouldEqual, search.ScoreSubstring)
		})

		Convey("A later occurrence can satisfy the word rule", func() {
			So(search.Score("Leeward Lee", "lee"), ShouldEqual, search.ScoreWord)
		})

		Convey("Partial token overlap scores between 0.5 and 0.7", func() {
			s := search.Score("Spencer Lee", "spencer iowa")
			So(s, ShouldAlmostEqual, 0.5+1.0/4.0*0.2)
			So(s, ShouldBeGreaterThan, 0.5)
			So(s, ShouldBeLessThan, search.ScoreSubstring)
		})

		Convey("Exact matches are symmetric", func() {
			for _, x := range []string{"a", "Iowa City, IA", "consi 8 #1", "O'Brien"} {
				So(search.Score(x, x), ShouldEqual, 1.0)
			}
		})
	})
}

func candidate(id, title string, extra ...search.Field) search.Candidate {
	fields := append([]search.Field{{Text: title, Weight: search.WeightPrimary}}, extra...)
	return search.Candidate{Type: search.TypeSchool, ID: id, Title: title, Fields: fields}
}

func titles(rs []search.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given candidates for the query lee", t, func() {
		cands := []search.Candidate{
			{Type: search.TypeWrestler, ID: "w1", Title: "Spencer Lee", Fields: []search.Field{{Text: "Spencer Lee", Weight: 1}}},
			candidate("s1", "Leeward School"),
			candidate("s2", "Lee Academy"),
			candidate("s3", "Iowa"),
		}
		rs := search.Rank("lee", cands)

		Convey("Results follow the score ladder and drop non-matches", func() {
			So(titles(rs), ShouldResemble, []string{"Lee Academy", "Spencer Lee", "Leeward School"})
		})
	})

	Convey("Given a secondary field match", t, func() {
		cands := []search.Candidate{
			candidate("s1", "Penn State", search.Field{Text: "Iowa City", Weight: search.WeightLocation}),
			candidate("s2", "Iowa"),
		}
		rs := search.Rank("iowa", cands)

		Convey("The discounted affiliation ranks below the name", func() {
			So(titles(rs), ShouldResemble, []string{"Iowa", "Penn State"})
			So(rs[1].RelevanceScore, ShouldAlmostEqual, search.ScorePrefix*search.WeightLocation)
		})
	})

	Convey("Given the same entity twice", t, func() {
		cands := []search.Candidate{
			candidate("s1", "Lehigh", search.Field{Text: "Bethlehem", Weight: search.WeightLocation}),
			candidate("s1", "Lehigh"),
		}
		rs := search.Rank("lehigh", cands)

		Convey("It appears once with its best score", func() {
			So(rs, ShouldHaveLength, 1)
			So(rs[0].RelevanceScore, ShouldEqual, 1.0)
		})
	})

	Convey("Equal scores fall back to title order", t, func() {
		rs := search.Rank("state", []search.Candidate{
			candidate("b", "Ohio State"),
			candidate("a", "Iowa State"),
			candidate("c", "NC State"),
		})
		So(titles(rs), ShouldResemble, []string{"Iowa State", "NC State", "Ohio State"})
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given a ranked pool", t, func() {
		var cands []search.Candidate
		for i := 0; i < 23; i++ {
			cands = append(cands, candidate(fmt.Sprintf("s%02d", i), fmt.Sprintf("School %02d", i)))
		}
		pool := search.Rank("school", cands)

		Convey("Pages concatenate back to the pool exactly once", func() {
			var all []search.Result
			for off := 0; off < len(pool); off += 5 {
				total, page := search.Paginate(pool, off, 5)
				So(total, ShouldEqual, 23)
				So(len(page), ShouldBeLessThanOrEqualTo, 5)
				all = append(all, page...)
			}
			So(all, ShouldResemble, pool)
		})

		Convey("Out of range offsets give an empty page", func() {
			total, page := search.Paginate(pool, 40, 5)
			So(total, ShouldEqual, 23)
			So(page, ShouldBeEmpty)
		})

		Convey("Ranking is stable across calls", func() {
			So(search.Rank("school", cands), ShouldResemble, pool)
		})
	})
}

func TestParseType(t *testing.T) {
	Convey("Type filters are validated", t, func() {
		ty, ok := search.ParseType("school")
		So(ok, ShouldBeTrue)
		So(ty, ShouldEqual, search.TypeSchool)
		_, ok = search.ParseType("")
		So(ok, ShouldBeTrue)
		_, ok = search.ParseType("match")
		So(ok, ShouldBeFalse)
	})
}

func TestRankSuggestions(t *testing.T) {
	Convey("Given raw suggestion rows", t, func() {
		entries := []search.Suggestion{
			{Text: "Iowa State", Type: search.TypeSchool, Count: 3},
			{Text: "Spencer Lee", Type: search.TypeWrestler, Count: 9},
			{Text: "Leeward", Type: search.TypeSchool, Count: 1},
			{Text: "spencer lee", Type: search.TypeWrestler, Count: 2},
			{Text: "Lee Academy", Type: search.TypeSchool, Count: 4},
			{Text: " ", Type: search.TypeSchool, Count: 50},
		}
		got := search.RankSuggestions("lee", entries, 10)

		Convey("Prefix matches lead, then higher counts", func() {
			So(len(got), ShouldEqual, 4)
			So(got[0].Text, ShouldEqual, "Lee Academy")
			So(got[1].Text, ShouldEqual, "Leeward")
			So(got[2].Text, ShouldEqual, "Spencer Lee")
			So(got[2].Count, ShouldEqual, 11)
			So(got[3].Text, ShouldEqual, "Iowa State")
		})

		Convey("The limit is honoured", func() {
			So(search.RankSuggestions("lee", entries, 2), ShouldHaveLength, 2)
		})
	})
}
