package breaking_test

import (
	"fmt"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/elastic"
)

func ExampleLineBreaker() {
	seq := elastic.NewSequence(
		elastic.Box(50),
		elastic.Glue(10, 5, 3),
		elastic.Box(50),
		elastic.Glue(10, 5, 3),
		elastic.Box(50),
	)
	lb := breaking.NewLineBreaker(breaking.LineOptions{Width: 115, Alignment: breaking.AlignJustify})
	res := lb.FindBreakingPoints(seq, 0, 2, false, breaking.AllBreaks)

	fmt.Println("lines:", res.Lines, "demerits:", res.Demerits)
	for _, bp := range res.Breakpoints {
		fmt.Printf("%d %.2f %s\n", bp.Position, bp.AdjustRatio, bp.Fitness)
	}
	// Output:
	// lines: 2 demerits: 10202
	// 3 1.00 loose
	// 4 0.00 tight
}

func ExamplePageBreaker() {
	seq := elastic.NewSequence(
		elastic.Box(10).WithFootnotes([]elastic.Element{elastic.Box(5)}),
		elastic.Glue(0, 10, 0),
		elastic.Box(10),
		elastic.ForcedBreak(),
	)
	pb := breaking.NewPageBreaker(breaking.PageOptions{
		Geometry: breaking.Fixed{Height: 30, Width: 100},
	})
	res := pb.FindBreakingPoints(seq, 0, 1, false, breaking.AllBreaks)

	for _, bp := range res.Breakpoints {
		fmt.Printf("page %d ends at %d with %d of footnotes\n", bp.Container+1, bp.Position, bp.Footnotes.Length)
	}
	// Output:
	// page 1 ends at 3 with 5 of footnotes
}
