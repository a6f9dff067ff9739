package ledgerbook

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// HomeCurrency is the reporting currency every total is converted into.
const HomeCurrency = "HKD"

// nameSeparator separates the bank name from the currency in a bank ledger name.
const nameSeparator = "-"

// CurrencyFromName returns the currency suffix of a bank ledger name, i.e.
// the text after the last separator ("HSBC-USD" gives "USD"), or "" when the
// name has no separator.
func CurrencyFromName(name string) string {
	i := strings.LastIndex(name, nameSeparator)
	if i < 0 {
		return ""
	}
	return name[i+len(nameSeparator):]
}

// BankLedgerName composes a bank ledger name from a bank name and a currency.
func BankLedgerName(bank, currency string) string {
	return bank + nameSeparator + currency
}

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if code == "" || money.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}
