package expense

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func record(id, employees, trip, date string, amount float64, status Status) *Expense {
	return &Expense{
		ID:           id,
		EmployeeName: employees,
		TripName:     trip,
		Date:         date,
		Amount:       decimal.NewFromFloat(amount),
		Currency:     "MXN",
		Status:       status,
	}
}

var _ = Describe("Filter", func() {
	var records []*Expense

	BeforeEach(func() {
		records = []*Expense{
			record("1", "Juan Pérez", "Visita Cliente Monterrey", "2024-05-10", 850.50, StatusPending),
			record("2", "Ana García", "Conferencia CDMX", "2024-05-12", 4500.00, StatusPending),
			record("3", "Juan Pérez", "Visita Cliente Monterrey", "2024-05-10", 230.00, StatusApproved),
			record("4", "Juan Pérez, Ana García", "Conferencia CDMX", "2024-05-15", 120.00, StatusRejected),
		}
	})

	Describe("Apply", func() {
		It("returns everything for the empty filter", func() {
			Expect(Apply(records, Filter{})).To(HaveLen(4))
		})

		It("matches employees inside the joined display string", func() {
			filtered := Apply(records, Filter{Employee: "Ana García"})
			Expect(filtered).To(HaveLen(2))
			Expect(filtered[0].ID).To(Equal("2"))
			Expect(filtered[1].ID).To(Equal("4"))
		})

		It("matches trip names exactly", func() {
			filtered := Apply(records, Filter{Trip: "Conferencia CDMX"})
			Expect(filtered).To(HaveLen(2))
		})

		It("matches the status exactly", func() {
			filtered := Apply(records, Filter{Status: StatusApproved})
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ID).To(Equal("3"))
		})

		It("combines predicates conjunctively", func() {
			filtered := Apply(records, Filter{Employee: "Juan Pérez", Status: StatusApproved})
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ID).To(Equal("3"))
		})

		It("includes dates inside an inclusive range", func() {
			filtered := Apply(records, Filter{StartDate: "2024-05-01", EndDate: "2024-05-31"})
			Expect(filtered).To(HaveLen(4))
		})

		It("excludes dates before the range start", func() {
			filtered := Apply(records, Filter{StartDate: "2024-05-11", EndDate: "2024-05-31"})
			Expect(filtered).To(HaveLen(2))
			Expect(filtered[0].ID).To(Equal("2"))
			Expect(filtered[1].ID).To(Equal("4"))
		})

		It("leaves an empty bound unconstrained", func() {
			filtered := Apply(records, Filter{EndDate: "2024-05-10"})
			Expect(filtered).To(HaveLen(2))
		})

		It("preserves the collection order", func() {
			filtered := Apply(records, Filter{Employee: "Juan Pérez"})
			Expect(filtered[0].ID).To(Equal("1"))
			Expect(filtered[1].ID).To(Equal("3"))
			Expect(filtered[2].ID).To(Equal("4"))
		})
	})

	Describe("Total", func() {
		It("sums the amounts of the filtered set exactly", func() {
			filtered := Apply(records, Filter{Trip: "Visita Cliente Monterrey"})
			Expect(Total(filtered).String()).To(Equal("1080.5"))
		})

		It("is zero for an empty set", func() {
			Expect(Total(nil).String()).To(Equal("0"))
		})
	})

	Describe("EmployeeNames", func() {
		It("splits, trims, deduplicates and sorts", func() {
			Expect(EmployeeNames(records)).To(Equal([]string{"Ana García", "Juan Pérez"}))
		})

		It("is empty for an empty collection", func() {
			Expect(EmployeeNames(nil)).To(BeEmpty())
		})
	})

	Describe("TripNames", func() {
		It("deduplicates in insertion order", func() {
			Expect(TripNames(records)).To(Equal([]string{"Visita Cliente Monterrey", "Conferencia CDMX"}))
		})
	})
})
