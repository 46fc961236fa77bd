package phone

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trezcool/tally/core"
)

// Summary aggregates the inventory.
type Summary struct {
	Models int     // number of phone records
	Units  int     // units in stock
	Value  float64 // sum of price x stock
}

func Summarize(phones []Phone) Summary {
	var sum Summary
	value := decimal.Zero
	for _, p := range phones {
		sum.Models++
		sum.Units += p.Stock
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	sum.Value = value.Round(2).InexactFloat64()
	return sum
}

// WriteReport renders the plain-text inventory report.
// It returns core.ErrNoData when there are no phones.
func WriteReport(phones []Phone, now time.Time) (core.Report, error) {
	if len(phones) == 0 {
		return core.Report{}, core.ErrNoData
	}

	sum := Summarize(phones)
	rule := strings.Repeat("=", 61)
	b := new(strings.Builder)
	fmt.Fprintln(b, "PHONE INVENTORY REPORT")
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "Generated on: "+now.Format(core.TimeLayout))
	fmt.Fprintln(b, "Total Phones: "+strconv.Itoa(sum.Models))
	fmt.Fprintln(b, "Units in Stock: "+strconv.Itoa(sum.Units))
	fmt.Fprintf(b, "Inventory Value: $%.2f\n", sum.Value)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)

	for _, p := range phones {
		fmt.Fprintf(b, "ID: %s\n", p.ID)
		fmt.Fprintf(b, "Phone: %s (%s %s)\n", p.Name, p.Brand, p.Model)
		fmt.Fprintf(b, "Price: $%.2f\n", p.Price)
		fmt.Fprintf(b, "Stock: %d\n", p.Stock)
		fmt.Fprintf(b, "Color: %s\n", p.Color)
		fmt.Fprintf(b, "Storage: %dGB\n", p.Storage)
		fmt.Fprintf(b, "Release Year: %d\n", p.ReleaseYear)
		fmt.Fprintf(b, "Created: %s\n", p.CreatedAt)
		fmt.Fprintln(b, strings.Repeat("-", 40))
	}

	return core.Report{
		Filename:    "phone_report_" + now.Format("2006-01-02") + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}, nil
}
