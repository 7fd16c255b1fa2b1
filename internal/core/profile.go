package core

import "fmt"

// Profile selects which derived fields are computed and in what order the
// row columns are assembled. One pipeline serves all three record shapes.
type Profile string

const (
	// ProfileBasic writes date, receipt id, description, category, amount
	// text, currency and time.
	ProfileBasic Profile = "basic"
	// ProfileWithConversion extends Basic with the amount converted to the
	// base currency.
	ProfileWithConversion Profile = "conversion"
	// ProfileEnriched writes the full metadata shape: payment method,
	// deductibility, status, notes and a month-year label.
	ProfileEnriched Profile = "enriched"
)

// ParseProfile validates a configured profile name.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileBasic, ProfileWithConversion, ProfileEnriched:
		return Profile(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// NeedsConversion reports whether the profile records a base-currency amount.
func (p Profile) NeedsConversion() bool {
	return p == ProfileWithConversion
}

// RowData carries every derived value a profile may project into columns.
// Fields irrelevant to the active profile are left zero.
type RowData struct {
	Timestamp     Timestamp
	ReceiptID     string
	Description   string
	Category      string
	AmountText    string
	Currency      string
	Converted     Money // base-currency amount, ProfileWithConversion only
	PaymentMethod Label
	Deductible    bool
	Status        Label
	Notes         string
}

// BuildRow assembles the ordered column values for the given profile. Pure;
// the column order is part of the external contract with the spreadsheet.
func BuildRow(p Profile, d RowData) []any {
	switch p {
	case ProfileBasic:
		return []any{
			d.Timestamp.Date,
			d.ReceiptID,
			d.Description,
			d.Category,
			d.AmountText,
			d.Currency,
			d.Timestamp.Time,
		}
	case ProfileWithConversion:
		return append(BuildRow(ProfileBasic, d), d.Converted.Amount())
	case ProfileEnriched:
		return []any{
			d.Timestamp.Date,
			d.ReceiptID,
			d.Description,
			d.Category,
			d.AmountText,
			d.Currency,
			d.PaymentMethod.Display,
			DeductibleFlag(d.Deductible),
			d.Status.Display,
			d.Timestamp.Time,
			d.Notes,
			d.Timestamp.MonthYear,
		}
	}
	return nil
}
