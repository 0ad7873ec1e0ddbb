// Package customer joins customer profiles with their behavioural events and
// normalises the profile columns.
package customer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Column names touched by Clean.
const (
	ColCustomerID       = "CustomerID"
	ColPhone            = "Phone"
	ColAge              = "Age"
	ColGender           = "Gender"
	ColTimestamp        = "Timestamp"
	ColEducation        = "Education"
	ColEmploymentStatus = "EmploymentStatus"
	ColIndustry         = "Industry"
	ColOccupation       = "Occupation"
)

// Join inner-joins customers with behaviour rows on CustomerID. Each
// customer row is repeated for each of its events, in input order. Columns
// present on both sides other than the key get _x and _y suffixes.
func Join(customers, behavior *tabular.Table) (*tabular.Table, error) {
	if err := customers.Require(ColCustomerID); err != nil {
		return nil, eris.Wrap(err, "customer: customers")
	}
	if err := behavior.Require(ColCustomerID); err != nil {
		return nil, eris.Wrap(err, "customer: behavior")
	}

	header := make([]string, 0, len(customers.Header)+len(behavior.Header))
	for _, h := range customers.Header {
		if h != ColCustomerID && behavior.Has(h) {
			h += "_x"
		}
		header = append(header, h)
	}
	var rightCols []int
	for i, h := range behavior.Header {
		if h == ColCustomerID {
			continue
		}
		if customers.Has(h) {
			h += "_y"
		}
		header = append(header, h)
		rightCols = append(rightCols, i)
	}

	byCustomer := make(map[string][]int)
	for r := range behavior.Rows {
		id := behavior.Get(r, ColCustomerID)
		byCustomer[id] = append(byCustomer[id], r)
	}

	out := tabular.New(header...)
	for r, left := range customers.Rows {
		for _, br := range byCustomer[customers.Get(r, ColCustomerID)] {
			row := make([]string, 0, len(header))
			row = append(row, padTo(left, len(customers.Header))...)
			right := behavior.Rows[br]
			for _, c := range rightCols {
				if c < len(right) {
					row = append(row, right[c])
				} else {
					row = append(row, "")
				}
			}
			out.Append(row)
		}
	}
	return out, nil
}

// Clean normalises the profile columns of a joined table in place and
// returns it. Columns that are absent are skipped.
func Clean(t *tabular.Table) *tabular.Table {
	transforms := []struct {
		col string
		fn  func(string) string
	}{
		{ColPhone, FormatPhone},
		{ColAge, FormatAge},
		{ColGender, mapper(genderCodes)},
		{ColTimestamp, FormatTimestamp},
		{ColEducation, mapper(educationCodes)},
		{ColEmploymentStatus, mapper(employmentCodes)},
		{ColIndustry, mapper(industryCodes)},
		{ColOccupation, mapper(occupationCodes)},
	}
	for _, tr := range transforms {
		if !t.Has(tr.col) {
			continue
		}
		for r := range t.Rows {
			t.Set(r, tr.col, tr.fn(t.Get(r, tr.col)))
		}
	}
	zap.L().Info("customer: behaviour cleaned", zap.Int("rows", t.Len()))
	return t
}

// FormatPhone renders a number in international format. A leading 001 is
// read as the +1 country code; numbers that do not parse are returned as is.
func FormatPhone(number string) string {
	in := strings.TrimSpace(number)
	if strings.HasPrefix(in, "001") {
		in = "+1" + in[3:]
	}
	num, err := phonenumbers.Parse(in, "US")
	if err != nil {
		return number
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// FormatAge compacts census-style age bands: "65 and over" becomes "65+"
// and "25 to 34" becomes "25-34".
func FormatAge(age string) string {
	parts := strings.Fields(age)
	switch {
	case len(parts) >= 2 && parts[len(parts)-1] == "over":
		return parts[0] + "+"
	case len(parts) == 3 && parts[1] == "to":
		return parts[0] + "-" + parts[2]
	default:
		return age
	}
}

// FormatTimestamp rewrites a timestamp in dataset.TimeLayout. Unparseable
// values are returned unchanged.
func FormatTimestamp(ts string) string {
	t, err := dataset.ParseTime(ts)
	if err != nil {
		return ts
	}
	return t.Format(dataset.TimeLayout)
}

func mapper(codes map[string]string) func(string) string {
	return func(s string) string {
		return codes[strings.TrimSpace(s)]
	}
}

func padTo(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}
