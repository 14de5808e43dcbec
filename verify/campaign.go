package verify

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/mdverify/api"
	"github.com/sarchlab/mdverify/mdu"
	valgen "github.com/sarchlab/mdverify/util"
)

// Case is a named request.
type Case struct {
	Name string
	Req  api.Request

	// ShowCycles prints the latency after the verdict line.
	ShowCycles bool
	// ShowExpected prints the oracle value after the verdict line.
	ShowExpected bool
}

// Group is a set of cases run after a fresh reset.
type Group struct {
	Title string
	Cases []Case
}

func newCase(name string, op mdu.Op, a, b uint32) Case {
	return Case{Name: name, Req: api.Request{Op: op, A: a, B: b}}
}

func neg(v uint32) uint32 {
	return -v
}

// ReferenceCampaign returns the fixed regression groups.
func ReferenceCampaign() []Group {
	divu := newCase("DIVU 10 / 3", mdu.OpDivu, 10, 3)
	divu.ShowCycles = true

	riscDV := newCase("REM  0x0eca293d % 0xeca293d0", mdu.OpRem, 0x0eca293d, 0xeca293d0)
	riscDV.ShowExpected = true

	return []Group{
		{
			Title: "Multiply Tests",
			Cases: []Case{
				newCase("MUL  3 * 7", mdu.OpMul, 3, 7),
				newCase("MUL  -3 * 7", mdu.OpMul, neg(3), 7),
				newCase("MUL  -3 * -7", mdu.OpMul, neg(3), neg(7)),
				newCase("MULH -3 * 7", mdu.OpMulh, neg(3), 7),
				newCase("MULH INT_MIN * INT_MIN", mdu.OpMulh, 0x80000000, 0x80000000),
				newCase("MULHSU -1 * 0xffffffff", mdu.OpMulhsu, neg(1), 0xffffffff),
				newCase("MULHSU 3 * INT_MAX", mdu.OpMulhsu, 3, 0x7fffffff),
				newCase("MULHU 0xffffffff * 0xffffffff", mdu.OpMulhu, 0xffffffff, 0xffffffff),
			},
		},
		{
			Title: "Unsigned Division Tests",
			Cases: []Case{
				divu,
				newCase("REMU 10 % 3", mdu.OpRemu, 10, 3),
				newCase("DIVU 100 / 10", mdu.OpDivu, 100, 10),
				newCase("REMU 100 % 10", mdu.OpRemu, 100, 10),
			},
		},
		{
			Title: "Signed Division Tests",
			Cases: []Case{
				newCase("DIV  -10 / 3", mdu.OpDiv, neg(10), 3),
				newCase("REM  -10 % 3", mdu.OpRem, neg(10), 3),
				newCase("DIV  10 / -3", mdu.OpDiv, 10, neg(3)),
				newCase("REM  10 % -3", mdu.OpRem, 10, neg(3)),
				newCase("DIV  -10 / -3", mdu.OpDiv, neg(10), neg(3)),
				newCase("REM  -10 % -3", mdu.OpRem, neg(10), neg(3)),
			},
		},
		{
			Title: "Division by Zero Tests",
			Cases: []Case{
				newCase("DIVU 42 / 0", mdu.OpDivu, 42, 0),
				newCase("REMU 42 % 0", mdu.OpRemu, 42, 0),
				newCase("DIV  -42 / 0", mdu.OpDiv, neg(42), 0),
				newCase("REM  -42 % 0", mdu.OpRem, neg(42), 0),
			},
		},
		{
			Title: "Overflow Tests",
			Cases: []Case{
				newCase("DIV  INT_MIN / -1", mdu.OpDiv, 0x80000000, neg(1)),
				newCase("REM  INT_MIN % -1", mdu.OpRem, 0x80000000, neg(1)),
			},
		},
		{
			Title: "RISC-DV Failing Cases",
			Cases: []Case{
				riscDV,
				newCase("DIVU 0xf01b3076 / 0x69cc592b", mdu.OpDivu, 0xf01b3076, 0x69cc592b),
				newCase("DIVU 1 / 2", mdu.OpDivu, 1, 2),
				newCase("REMU 1 % 2", mdu.OpRemu, 1, 2),
			},
		},
		{
			Title: "Consecutive Division Tests",
			Cases: []Case{
				newCase("DIVU 100 / 7 (1st)", mdu.OpDivu, 100, 7),
				newCase("DIVU 200 / 13 (2nd)", mdu.OpDivu, 200, 13),
				newCase("REM  0x12345678 % 0xABCD (3rd)", mdu.OpRem, 0x12345678, 0x0000abcd),
			},
		},
	}
}

// RandomCampaign returns n cases over all eight operations. Operands are drawn
// from edge-biased and uniform generators seeded with seed, so a failing case
// can be replayed from its number and the seed.
func RandomCampaign(n int, seed int64) []Group {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	gens := []func() uint32{
		valgen.MakeEdgeGen(rng),
		valgen.MakeRandomGen(rng),
	}
	number := valgen.MakeIncreasingGen(0)

	g := Group{Title: fmt.Sprintf("Random Tests (seed %d)", seed)}
	for i := 0; i < n; i++ {
		op := mdu.AllOps[rng.Intn(len(mdu.AllOps))]
		a := gens[rng.Intn(len(gens))]()
		b := gens[rng.Intn(len(gens))]()

		g.Cases = append(g.Cases, Case{
			Name: fmt.Sprintf("#%-4d %-6s 0x%08x, 0x%08x", number(), op, a, b),
			Req:  api.Request{Op: op, A: a, B: b},
		})
	}

	return []Group{g}
}

// Run checks every group, resetting the unit before each one.
func (c *Checker) Run(groups []Group) {
	for _, g := range groups {
		c.Section(g.Title)
		c.Reset()

		for _, tc := range g.Cases {
			rec := c.Check(tc.Name, tc.Req)

			if tc.ShowExpected {
				fmt.Fprintf(c.out, "    Expected: 0x%08x\n", rec.Expected)
			}
			if tc.ShowCycles && rec.Outcome != OutcomeTimeout {
				fmt.Fprintf(c.out, "    (took %d cycles)\n", rec.Cycles)
			}
		}
	}
}
