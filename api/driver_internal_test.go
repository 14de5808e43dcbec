package api

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdverify/mdu"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl  *gomock.Controller
		mockUnit  *MockUnit
		mockClock *MockClock
		driver    *driverImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockUnit = NewMockUnit(mockCtrl)
		mockClock = NewMockClock(mockCtrl)

		driver = &driverImpl{
			name:        "Driver",
			unit:        mockUnit,
			clock:       mockClock,
			timeout:     DefaultTimeout,
			resetCycles: DefaultResetCycles,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	expectRequest := func(op mdu.Op, a, b uint32) {
		mockUnit.EXPECT().SetOp(op)
		mockUnit.EXPECT().SetOperands(a, b)
		gomock.InOrder(
			mockUnit.EXPECT().SetStart(true),
			mockUnit.EXPECT().SetStart(false),
		)
	}

	Context("when resetting", func() {
		It("should hold reset with inputs low, then release it", func() {
			mockUnit.EXPECT().SetStart(false)
			mockUnit.EXPECT().SetOp(mdu.OpMul)
			mockUnit.EXPECT().SetOperands(uint32(0), uint32(0))
			gomock.InOrder(
				mockUnit.EXPECT().SetResetN(false),
				mockClock.EXPECT().Tick().Times(DefaultResetCycles),
				mockUnit.EXPECT().SetResetN(true),
				mockClock.EXPECT().Tick(),
			)

			driver.Reset()

			Expect(driver.Cycle()).To(Equal(uint64(DefaultResetCycles + 1)))
		})
	})

	Context("when running a divide", func() {
		It("should capture the result on the first done cycle", func() {
			expectRequest(mdu.OpDivu, 10, 3)
			gomock.InOrder(
				mockUnit.EXPECT().Done().Return(false).Times(2),
				mockUnit.EXPECT().Done().Return(true),
			)
			mockUnit.EXPECT().Result().Return(uint32(3))
			mockUnit.EXPECT().Busy().Return(false)
			mockClock.EXPECT().Tick().Times(4)

			rsp, err := driver.Execute(Request{Op: mdu.OpDivu, A: 10, B: 3})

			Expect(err).NotTo(HaveOccurred())
			Expect(rsp).To(Equal(Response{Result: 3, Cycles: 3}))
			Expect(driver.Cycle()).To(Equal(uint64(4)))
		})

		It("should keep the result when busy overlaps done", func() {
			expectRequest(mdu.OpRem, 0xfffffff6, 3)
			mockUnit.EXPECT().Done().Return(true)
			mockUnit.EXPECT().Result().Return(uint32(0xffffffff))
			mockUnit.EXPECT().Busy().Return(true)
			mockClock.EXPECT().Tick().Times(2)

			rsp, err := driver.Execute(Request{Op: mdu.OpRem, A: 0xfffffff6, B: 3})

			Expect(err).NotTo(HaveOccurred())
			Expect(rsp.Result).To(Equal(uint32(0xffffffff)))
			Expect(rsp.Cycles).To(Equal(uint32(1)))
			Expect(rsp.BusyOnDone).To(BeTrue())
		})

		It("should give up after the timeout and return the sentinel", func() {
			driver.timeout = 10

			expectRequest(mdu.OpDiv, 7, 2)
			mockUnit.EXPECT().Done().Return(false).Times(10)
			mockClock.EXPECT().Tick().Times(11)

			rsp, err := driver.Execute(Request{Op: mdu.OpDiv, A: 7, B: 2})

			Expect(errors.Is(err, ErrTimeout)).To(BeTrue())
			Expect(rsp.Result).To(Equal(TimeoutResult))
			Expect(rsp.Cycles).To(Equal(uint32(10)))
			Expect(driver.Cycle()).To(Equal(uint64(11)))
		})
	})

	Context("when running a multiply", func() {
		It("should strobe start for one cycle", func() {
			expectRequest(mdu.OpMul, 3, 7)
			mockUnit.EXPECT().Result().Return(uint32(21))
			mockUnit.EXPECT().Done().Return(true)
			mockUnit.EXPECT().Busy().Return(false)
			mockClock.EXPECT().Tick().Times(2)

			rsp, err := driver.Execute(Request{Op: mdu.OpMul, A: 3, B: 7})

			Expect(err).NotTo(HaveOccurred())
			Expect(rsp).To(Equal(Response{Result: 21, Cycles: 1}))
		})

		It("should report a missing done but keep the observed result", func() {
			expectRequest(mdu.OpMulhu, 0xffffffff, 0xffffffff)
			mockUnit.EXPECT().Result().Return(uint32(0))
			mockUnit.EXPECT().Done().Return(false)
			mockClock.EXPECT().Tick().Times(2)

			rsp, err := driver.Execute(
				Request{Op: mdu.OpMulhu, A: 0xffffffff, B: 0xffffffff})

			Expect(err).To(MatchError(ErrNoDone))
			Expect(rsp.Result).To(Equal(uint32(0)))
			Expect(rsp.Cycles).To(Equal(uint32(1)))
		})
	})
})

var _ = Describe("DriverBuilder", func() {
	var (
		mockCtrl  *gomock.Controller
		mockUnit  *MockUnit
		mockClock *MockClock
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockUnit = NewMockUnit(mockCtrl)
		mockClock = NewMockClock(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should fill in the default bounds", func() {
		d := DriverBuilder{}.
			WithUnit(mockUnit).
			WithClock(mockClock).
			Build("Driver").(*driverImpl)

		Expect(d.timeout).To(Equal(DefaultTimeout))
		Expect(d.resetCycles).To(Equal(DefaultResetCycles))
	})

	It("should take custom bounds", func() {
		d := DriverBuilder{}.
			WithUnit(mockUnit).
			WithClock(mockClock).
			WithTimeout(64).
			WithResetCycles(2).
			Build("Driver").(*driverImpl)

		Expect(d.timeout).To(Equal(64))
		Expect(d.resetCycles).To(Equal(2))
	})

	It("should refuse a zero timeout", func() {
		Expect(func() { DriverBuilder{}.WithTimeout(0) }).To(Panic())
	})

	It("should refuse to build without a clock", func() {
		Expect(func() {
			DriverBuilder{}.WithUnit(mockUnit).Build("Driver")
		}).To(Panic())
	})
})

var _ = Describe("Request", func() {
	It("should print the op and both operands", func() {
		req := Request{Op: mdu.OpRemu, A: 10, B: 3}
		Expect(req.String()).To(Equal("REMU 0x0000000a, 0x00000003"))
	})
})
