package config_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdverify/api"
	"github.com/sarchlab/mdverify/config"
	"github.com/sarchlab/mdverify/mdu"
)

var _ = Describe("Bench", func() {
	var (
		params *config.Params
		bench  *config.Bench
		driver api.Driver
	)

	build := func(fault mdu.Fault) {
		bench = config.BenchBuilder{}.
			WithFault(fault).
			Build("Bench")
		driver = bench.NewDriver("Driver", params)
		driver.Reset()
	}

	BeforeEach(func() {
		params = config.DefaultParams()
		build(mdu.FaultNone)
	})

	It("should advance the unit once per tick", func() {
		Expect(bench.Cycle()).To(Equal(uint64(6)))
		Expect(driver.Cycle()).To(Equal(bench.Cycle()))

		bench.Tick()
		Expect(bench.Cycle()).To(Equal(uint64(7)))
	})

	DescribeTable("should run requests end to end",
		func(op mdu.Op, a, b, want uint32, cycles uint32) {
			rsp, err := driver.Execute(api.Request{Op: op, A: a, B: b})

			Expect(err).NotTo(HaveOccurred())
			Expect(rsp.Result).To(Equal(want))
			Expect(rsp.Cycles).To(Equal(cycles))
			Expect(rsp.BusyOnDone).To(BeFalse())
		},
		Entry("MUL 3 * 7", mdu.OpMul, uint32(3), uint32(7), uint32(21), uint32(1)),
		Entry("MULHU max", mdu.OpMulhu, uint32(0xffffffff), uint32(0xffffffff), uint32(0xfffffffe), uint32(1)),
		Entry("DIVU 10 / 3", mdu.OpDivu, uint32(10), uint32(3), uint32(3), uint32(33)),
		Entry("REMU 10 % 3", mdu.OpRemu, uint32(10), uint32(3), uint32(1), uint32(33)),
		Entry("DIV -10 / 3", mdu.OpDiv, uint32(0xfffffff6), uint32(3), uint32(0xfffffffd), uint32(33)),
		Entry("DIVU 42 / 0", mdu.OpDivu, uint32(42), uint32(0), uint32(0xffffffff), uint32(1)),
		Entry("DIV INT_MIN / -1", mdu.OpDiv, uint32(0x80000000), uint32(0xffffffff), uint32(0x80000000), uint32(33)),
	)

	It("should run back-to-back divisions without a reset", func() {
		rsp, err := driver.Execute(api.Request{Op: mdu.OpDivu, A: 100, B: 7})
		Expect(err).NotTo(HaveOccurred())
		Expect(rsp.Result).To(Equal(uint32(14)))

		rsp, err = driver.Execute(api.Request{Op: mdu.OpDivu, A: 200, B: 13})
		Expect(err).NotTo(HaveOccurred())
		Expect(rsp.Result).To(Equal(uint32(15)))
	})

	It("should time out on a hung divider", func() {
		params.TimeoutCycles = 50
		build(mdu.FaultHang)

		rsp, err := driver.Execute(api.Request{Op: mdu.OpDiv, A: 10, B: 3})

		Expect(errors.Is(err, api.ErrTimeout)).To(BeTrue())
		Expect(rsp.Result).To(Equal(api.TimeoutResult))

		rsp, err = driver.Execute(api.Request{Op: mdu.OpMul, A: 6, B: 7})
		Expect(err).To(HaveOccurred())
		Expect(rsp.Result).NotTo(Equal(uint32(42)))
	})

	It("should flag busy overlapping done", func() {
		build(mdu.FaultBusyOnDone)

		rsp, err := driver.Execute(api.Request{Op: mdu.OpDivu, A: 9, B: 2})

		Expect(err).NotTo(HaveOccurred())
		Expect(rsp.Result).To(Equal(uint32(4)))
		Expect(rsp.BusyOnDone).To(BeTrue())
	})

	It("should report a late multiply", func() {
		build(mdu.FaultSlowMul)

		_, err := driver.Execute(api.Request{Op: mdu.OpMul, A: 3, B: 7})

		Expect(err).To(MatchError(api.ErrNoDone))
	})

	It("should build from params", func() {
		params.Fault = "div-zero"
		params.FreqMHz = 500
		bench = config.BenchBuilder{}.WithParams(params).Build("Bench")
		driver = bench.NewDriver("Driver", params)
		driver.Reset()

		rsp, err := driver.Execute(api.Request{Op: mdu.OpDivu, A: 42, B: 0})

		Expect(err).NotTo(HaveOccurred())
		Expect(rsp.Result).To(Equal(uint32(0)))
	})
})
