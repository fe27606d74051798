package service

import (
	"regexp"
	"strings"

	"receipt-insights/internal/models"
)

var (
	vendorPattern = regexp.MustCompile(`(?i)(?:From|Vendor|Store|Biller):?\s*(.+)`)
	datePattern   = regexp.MustCompile(`(?i)\b(?:Date|Billing Date):?\s*([\d/.\-]+)`)
	amountPattern = regexp.MustCompile(`(?i)\b(?:Total|Amount|Paid|Total Amount):?\s*[$₹€£]?([\d,.]+)`)
)

// ParseFields pulls vendor, date and amount out of receipt text. Each field is
// the first labelled match in document order; missing fields keep their
// defaults. The outcome is empty when nothing matched.
func ParseFields(text string) (models.ParsedFields, Outcome) {
	fields := models.DefaultFields()
	matched := false

	if m := vendorPattern.FindStringSubmatch(text); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			fields.Vendor = v
			matched = true
		}
	}
	if m := datePattern.FindStringSubmatch(text); m != nil {
		fields.Date = strings.TrimSpace(m[1])
		matched = true
	}
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		fields.Amount = strings.TrimSpace(m[1])
		matched = true
	}

	if !matched {
		return fields, OutcomeEmpty
	}
	return fields, OutcomeSuccess
}
