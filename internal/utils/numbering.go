package utils

import "fmt"

// Human-readable document numbers. The sequence value comes from the
// per-tenant/year counter in the document_sequences table.

// FormatBookingNumber builds a FOG-<year>-<5-digit-seq> booking number.
func FormatBookingNumber(year int, seq int32) string {
	return fmt.Sprintf("FOG-%d-%05d", year, seq)
}

// FormatReceiptNumber builds a BEV-<year>-<4-digit-seq> receipt number.
func FormatReceiptNumber(year int, seq int32) string {
	return fmt.Sprintf("BEV-%d-%04d", year, seq)
}

// FormatAvizoNumber builds an AV-<year>-<4-digit-seq> avizo number.
func FormatAvizoNumber(year int, seq int32) string {
	return fmt.Sprintf("AV-%d-%04d", year, seq)
}
