package calc

import "fmt"

// MissingRateError wordt teruggegeven als een berekening verwijst naar
// referentiedata die niet geconfigureerd is. De berekening rekent dan
// bewust niets stilzwijgend op nul.
type MissingRateError struct {
	Tabel string // "normuur" of "correctiefactor"
	Key   string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("geen tarief geconfigureerd: %s %q", e.Tabel, e.Key)
}

// InvalidInputError wordt teruggegeven bij ongeldige invoer; de hele
// berekening wordt afgebroken, er is nooit een deels geprijsde offerte.
type InvalidInputError struct {
	Veld  string
	Reden string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("ongeldige invoer voor %s: %s", e.Veld, e.Reden)
}
