package specification

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	s "github.com/krew-solutions/specification-go/specification/domain"
	"github.com/krew-solutions/specification-go/specification/domain/public"
)

// Golden files pin the rendered WHERE clauses, so an accidental change in
// precedence handling or placeholder numbering shows up as a readable diff.
func TestCompileGolden(t *testing.T) {
	cutoff := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		expr s.Visitable
	}{
		{"great_and_recent", s.And(greatExpr(), recentExpr(cutoff))},
		{"great_or_recent", s.Or(greatExpr(), recentExpr(cutoff))},
		{"not_great", s.Not(greatExpr())},
		{"demorgan_and_of_nots", s.And(s.Not(greatExpr()), s.Not(recentExpr(cutoff)))},
		{"wildcard_genres", public.MatchAny("genres",
			public.MakeTextItemField("name").Eq(public.MakeTextValue("Drama"))).Delegate()},
	}

	g := goldie.New(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sql, _, err := Compile(c.expr)
			require.NoError(t, err)
			g.Assert(t, c.name, []byte(sql))
		})
	}
}
