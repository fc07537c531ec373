package boxoffice_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/store/memory"
	"github.com/xraph/boxoffice/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memory.New()

		// Initialize the engine
		bo := boxoffice.New(store,
			boxoffice.WithLogger(slog.Default()),
			boxoffice.WithPolicy(pricing.Default("eur")),
			boxoffice.WithLockTimeout(2*time.Second),
		)

		// Start the engine
		ctx := context.Background()
		if err := bo.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer bo.Stop()

		// Provision a venue and a performance
		v, err := bo.CreateVenue(ctx, boxoffice.CreateVenueInput{
			TenantID:    "tenant_123",
			Name:        "Royal Theatre",
			City:        "Amsterdam",
			MaxCapacity: 1200,
		})
		if err != nil {
			t.Fatal(err)
		}

		p, err := bo.CreatePerformance(ctx, boxoffice.CreatePerformanceInput{
			VenueID:  v.ID,
			TenantID: "tenant_123",
			Name:     "Swan Lake",
			StartsAt: time.Now().Add(30 * 24 * time.Hour),
			Capacity: 800,
			Currency: "eur",
		})
		if err != nil {
			t.Fatal(err)
		}

		// Carve the performance into sections
		stalls, err := bo.CreateSection(ctx, boxoffice.CreateSectionInput{
			PerformanceID: p.ID,
			Name:          "Stalls",
			TotalCapacity: 500,
			BasePrice:     types.EUR(7500), // €75.00
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := bo.CreateSection(ctx, boxoffice.CreateSectionInput{
			PerformanceID: p.ID,
			Name:          "Balcony",
			TotalCapacity: 300,
			BasePrice:     types.EUR(4500), // €45.00
		}); err != nil {
			t.Fatal(err)
		}

		// Register admission categories and allocate capacity to them
		adult, err := bo.CreateTicketType(ctx, boxoffice.CreateTicketTypeInput{
			TenantID: "tenant_123",
			Code:     "adult",
			Name:     "Adult",
		})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := bo.CreateAllocation(ctx, boxoffice.CreateAllocationInput{
			SectionID:    stalls.ID,
			TicketTypeID: adult.ID,
			Capacity:     500,
		}); err != nil {
			t.Fatal(err)
		}

		// Attach a bookable add-on
		if _, err := bo.CreateOption(ctx, boxoffice.CreateOptionInput{
			PerformanceID: p.ID,
			TenantID:      "tenant_123",
			Name:          "Programme",
			Mode:          option.ModeFlat,
			Price:         types.EUR(500), // €5.00
			MaxQuantity:   4,
		}); err != nil {
			t.Fatal(err)
		}

		// Quote a prospective booking (never mutates capacity)
		quote, err := bo.Quote(ctx, boxoffice.QuoteInput{
			PerformanceID: p.ID,
			SectionName:   "Stalls",
			TicketTypeID:  adult.ID,
			Quantity:      2,
		})
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Quoted 2 stalls seats at %s\n", quote.FinalPrice.String())

		// Reserve, then sell
		if _, err := bo.ReserveSeats(ctx, p.ID, "Stalls", adult.ID, 2); err != nil {
			t.Fatal(err)
		}
		if _, err := bo.SellSeats(ctx, p.ID, "Stalls", adult.ID, 2); err != nil {
			t.Fatal(err)
		}

		// Roll up remaining capacity across the performance
		summary, err := bo.CapacitySummary(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Sold %d of %d seats\n", summary.Sold, summary.Total)
	})

	// Test Money type examples
	t.Run("MoneyExamples", func(t *testing.T) {
		// Constructors
		_ = types.USD(5000)   // $50.00
		_ = types.EUR(7500)   // €75.00
		_ = types.Zero("usd") // $0.00

		// Arithmetic
		m1 := types.USD(100)
		m2 := types.USD(200)
		_ = m1.Add(m2)         // $3.00
		_ = m1.Multiply(3)     // $3.00
		_ = m1.ApplyBps(1500)  // 15% of $1.00
		_ = m2.Subtract(m1)    // $1.00

		// Comparison
		if m1.LessThan(m2) {
			// m1 is less than m2
		}

		// Formatting
		_ = m1.String()      // "$1.00"
		_ = m1.FormatMajor() // "1.00"
	})
}
