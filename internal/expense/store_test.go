package expense

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Store", func() {
	sampleRecords := func() []*Expense {
		return []*Expense{
			{
				ID:            "1",
				EmployeeName:  "Juan Pérez",
				TripName:      "Visita Cliente Monterrey",
				TripStartDate: "2024-05-09",
				TripEndDate:   "2024-05-11",
				Vendor:        "Restaurante La Capital",
				Date:          "2024-05-10",
				Amount:        decimal.NewFromFloat(850.50),
				Currency:      "MXN",
				Category:      "Food",
				ReceiptFile:   NewReceiptFile("comida.jpg", "image/jpeg", []byte("image bytes")),
				Status:        StatusPending,
			},
			{
				ID:           "2",
				EmployeeName: "Ana García",
				TripName:     "Conferencia CDMX",
				Date:         "2024-05-12",
				Amount:       decimal.NewFromFloat(4500.00),
				Currency:     "MXN",
				Status:       StatusApproved,
			},
		}
	}

	Describe("MemoryStore", func() {
		var store *MemoryStore

		BeforeEach(func() {
			store = NewMemoryStore()
		})

		It("starts empty", func() {
			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("replaces and lists the collection in order", func() {
			Expect(store.ReplaceAll(sampleRecords())).To(Succeed())

			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].ID).To(Equal("1"))
			Expect(records[1].ID).To(Equal("2"))
		})

		It("is unaffected by later mutation of the input slice", func() {
			input := sampleRecords()
			Expect(store.ReplaceAll(input)).To(Succeed())
			input[0] = nil

			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records[0]).NotTo(BeNil())
		})
	})

	Describe("BoltStore", func() {
		var (
			tempDir string
			dbPath  string
			store   *BoltStore
		)

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "viaticos-test-*")
			Expect(err).NotTo(HaveOccurred())
			dbPath = filepath.Join(tempDir, "test.db")

			store, err = NewBoltStore(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			store.Close()
			os.RemoveAll(tempDir)
		})

		It("starts empty", func() {
			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("round-trips the collection preserving order and content", func() {
			Expect(store.ReplaceAll(sampleRecords())).To(Succeed())

			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].ID).To(Equal("1"))
			Expect(records[0].Amount.Equal(decimal.NewFromFloat(850.50))).To(BeTrue())
			Expect(records[1].Status).To(Equal(StatusApproved))

			decoded, err := records[0].ReceiptFile.Bytes()
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal([]byte("image bytes")))
		})

		It("persists across reopen", func() {
			Expect(store.ReplaceAll(sampleRecords())).To(Succeed())
			Expect(store.Close()).To(Succeed())

			reopened, err := NewBoltStore(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer reopened.Close()

			records, err := reopened.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})

		It("replaces the previous collection wholesale", func() {
			Expect(store.ReplaceAll(sampleRecords())).To(Succeed())
			Expect(store.ReplaceAll(sampleRecords()[:1])).To(Succeed())

			records, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})
	})
})
