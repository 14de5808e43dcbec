package verify_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdverify/config"
	"github.com/sarchlab/mdverify/mdu"
	"github.com/sarchlab/mdverify/verify"
)

func statsFor(r *verify.VerificationReport, op mdu.Op) verify.OpStats {
	for _, s := range r.Stats {
		if s.Op == op {
			return s
		}
	}

	Fail("no stats for " + op.String())
	return verify.OpStats{}
}

var _ = Describe("VerificationReport", func() {
	var (
		params *config.Params
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		params = config.DefaultParams()
		out = new(bytes.Buffer)
	})

	It("should summarize a clean run per operation", func() {
		checker := newBenchChecker(params, out)
		checker.Run(verify.ReferenceCampaign())

		report := verify.GenerateReport(checker)

		Expect(report.Cases).To(Equal(31))
		Expect(report.Failures).To(BeEmpty())
		Expect(report.Stats).To(HaveLen(8))

		mul := statsFor(report, mdu.OpMul)
		Expect(mul.MinCycles).To(Equal(uint32(1)))
		Expect(mul.MaxCycles).To(Equal(uint32(1)))

		divu := statsFor(report, mdu.OpDivu)
		Expect(divu.Cases).To(Equal(7))
		Expect(divu.MinCycles).To(Equal(uint32(1)))
		Expect(divu.MaxCycles).To(Equal(uint32(33)))

		buf := new(bytes.Buffer)
		report.WriteReport(buf)

		Expect(buf.String()).To(ContainSubstring("MULTIPLY/DIVIDE UNIT CONFORMANCE REPORT"))
		Expect(buf.String()).To(ContainSubstring("Result: PASS"))
		Expect(buf.String()).NotTo(ContainSubstring("Failures"))
	})

	It("should list timeouts among the failures", func() {
		params.Fault = "hang"
		params.TimeoutCycles = 40
		checker := newBenchChecker(params, out)
		checker.Run(verify.ReferenceCampaign())

		report := verify.GenerateReport(checker)

		divu := statsFor(report, mdu.OpDivu)
		Expect(divu.Timeouts).To(Equal(6))
		Expect(divu.Passed).To(Equal(1))
		Expect(report.Failures).To(HaveLen(19))

		buf := new(bytes.Buffer)
		report.WriteReport(buf)

		Expect(buf.String()).To(ContainSubstring("Failures"))
		Expect(buf.String()).To(ContainSubstring("TIMEOUT"))
		Expect(buf.String()).To(ContainSubstring("Result: FAIL"))
	})

	It("should save the report to a file", func() {
		checker := newBenchChecker(params, out)
		checker.Run(verify.ReferenceCampaign())
		path := filepath.Join(GinkgoT().TempDir(), "report.txt")

		err := verify.GenerateReport(checker).SaveReportToFile(path)

		Expect(err).NotTo(HaveOccurred())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("Passed: 31"))
	})

	It("should report an unwritable path", func() {
		checker := newBenchChecker(params, out)

		err := verify.GenerateReport(checker).
			SaveReportToFile(filepath.Join(GinkgoT().TempDir(), "missing", "report.txt"))

		Expect(err).To(MatchError(ContainSubstring("failed to create report file")))
	})
})
