package calc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/model"
)

// regelNamespace maakt regel-IDs afleidbaar uit hun positie en sleutel,
// zodat twee identieke berekeningen byte-voor-byte hetzelfde opleveren.
// De positie binnen de scope zit mee in de hash: dezelfde taak twee keer
// opvoeren geeft twee regels met verschillende IDs.
var regelNamespace = uuid.MustParse("7b1e52aa-9c3d-4e0f-8a11-6f2d9b4c5e03")

// Rond2 rondt af op twee decimalen, half weg van nul. Alle opslagbare
// geldbedragen gaan door deze functie, niet alleen de weergave.
func Rond2(x float64) float64 {
	return math.Round(x*100) / 100
}

// BerekenRegels zet de invoer om in geprijsde offerteregels. Ontbrekende
// normuren of correctiefactoren leveren een *MissingRateError op;
// ongeldige aantallen of condities een *InvalidInputError. Inactieve of
// onbekende producten worden overgeslagen.
func BerekenRegels(invoer Invoer, ref Referentie) ([]model.OfferteRegel, error) {
	if err := valideerInvoer(invoer, ref.Instellingen); err != nil {
		return nil, err
	}

	idx := buildIndex(ref)

	factor, err := conditieFactor(idx, invoer.Bereikbaarheid, invoer.Achterstand)
	if err != nil {
		return nil, err
	}

	regels := make([]model.OfferteRegel, 0, aantalPosten(invoer))
	for i, sel := range invoer.ScopeSelecties {
		for j, taak := range sel.Taken {
			norm, ok := idx.normUren[normKey{scope: sel.Scope, taak: taak.TaakKey}]
			if !ok {
				return nil, &MissingRateError{
					Tabel: "normuur",
					Key:   fmt.Sprintf("%s/%s", sel.Scope, taak.TaakKey),
				}
			}

			uren := Rond2(taak.Hoeveelheid * norm.UrenPerEenheid * factor)
			regels = append(regels, model.OfferteRegel{
				ID:              regelID(i, j, "taak", taak.TaakKey),
				Omschrijving:    norm.Omschrijving,
				Scope:           sel.Scope,
				Type:            model.RegelTypeArbeid,
				Hoeveelheid:     uren,
				Eenheid:         "uur",
				PrijsPerEenheid: ref.Instellingen.Uurtarief,
				Totaal:          Rond2(uren * ref.Instellingen.Uurtarief),
			})
		}

		for j, mat := range sel.Materialen {
			product, ok := idx.producten[mat.ProductID]
			if !ok || !product.Actief {
				continue
			}

			regels = append(regels, model.OfferteRegel{
				ID:              regelID(i, j, "product", mat.ProductID.String()),
				Omschrijving:    product.Naam,
				Scope:           sel.Scope,
				Type:            model.RegelTypeMateriaal,
				Hoeveelheid:     mat.Hoeveelheid,
				Eenheid:         product.Eenheid,
				PrijsPerEenheid: product.PrijsPerEenheid,
				Totaal:          Rond2(mat.Hoeveelheid * product.PrijsPerEenheid),
			})
		}
	}

	return regels, nil
}

// BerekenTotalen telt de regels op en past de vaste cascade toe:
// subtotaal -> marge -> totaal ex BTW -> BTW -> totaal incl BTW.
// De marge wordt over het subtotaal berekend, de BTW over het bedrag
// inclusief marge. Die volgorde is het financiële contract.
func BerekenTotalen(regels []model.OfferteRegel, margePct, btwPct float64) (model.Totalen, error) {
	if err := valideerPercentage("margePercentage", margePct); err != nil {
		return model.Totalen{}, err
	}
	if err := valideerPercentage("btwPercentage", btwPct); err != nil {
		return model.Totalen{}, err
	}

	var materiaal, arbeid, uren float64
	for _, regel := range regels {
		switch regel.Type {
		case model.RegelTypeMateriaal:
			materiaal += regel.Totaal
		case model.RegelTypeArbeid:
			arbeid += regel.Totaal
			uren += regel.Hoeveelheid
		default:
			return model.Totalen{}, &InvalidInputError{
				Veld:  "regels",
				Reden: fmt.Sprintf("onbekend regeltype %q", regel.Type),
			}
		}
	}

	totalen := model.Totalen{
		Materiaalkosten: Rond2(materiaal),
		Arbeidskosten:   Rond2(arbeid),
		TotaalUren:      Rond2(uren),
		MargePercentage: margePct,
	}
	totalen.Subtotaal = Rond2(totalen.Materiaalkosten + totalen.Arbeidskosten)
	totalen.Marge = Rond2(totalen.Subtotaal * margePct / 100)
	totalen.TotaalExBtw = Rond2(totalen.Subtotaal + totalen.Marge)
	totalen.Btw = Rond2(totalen.TotaalExBtw * btwPct / 100)
	totalen.TotaalInclBtw = Rond2(totalen.TotaalExBtw + totalen.Btw)
	return totalen, nil
}

func conditieFactor(idx index, bereikbaarheid model.Bereikbaarheid, achterstand model.AchterstandErnst) (float64, error) {
	factor, ok := idx.factoren[factorKey{dimensie: model.DimensieBereikbaarheid, waarde: string(bereikbaarheid)}]
	if !ok {
		return 0, &MissingRateError{
			Tabel: "correctiefactor",
			Key:   fmt.Sprintf("%s/%s", model.DimensieBereikbaarheid, bereikbaarheid),
		}
	}
	if factor <= 0 {
		return 0, &InvalidInputError{Veld: "correctiefactor", Reden: "factor moet groter dan nul zijn"}
	}

	// Meerdere condities componeren multiplicatief, niet additief.
	if achterstand != model.AchterstandGeen {
		extra, ok := idx.factoren[factorKey{dimensie: model.DimensieAchterstand, waarde: string(achterstand)}]
		if !ok {
			return 0, &MissingRateError{
				Tabel: "correctiefactor",
				Key:   fmt.Sprintf("%s/%s", model.DimensieAchterstand, achterstand),
			}
		}
		if extra <= 0 {
			return 0, &InvalidInputError{Veld: "correctiefactor", Reden: "factor moet groter dan nul zijn"}
		}
		factor *= extra
	}

	return factor, nil
}

func valideerInvoer(invoer Invoer, instellingen model.Instellingen) error {
	if !invoer.Bereikbaarheid.Geldig() {
		return &InvalidInputError{Veld: "bereikbaarheid", Reden: fmt.Sprintf("onbekende waarde %q", invoer.Bereikbaarheid)}
	}
	if !invoer.Achterstand.Geldig() {
		return &InvalidInputError{Veld: "achterstand", Reden: fmt.Sprintf("onbekende waarde %q", invoer.Achterstand)}
	}
	if instellingen.Uurtarief < 0 {
		return &InvalidInputError{Veld: "uurtarief", Reden: "mag niet negatief zijn"}
	}
	if err := valideerPercentage("btwPercentage", instellingen.BtwPercentage); err != nil {
		return err
	}

	for _, sel := range invoer.ScopeSelecties {
		if !sel.Scope.Geldig() {
			return &InvalidInputError{Veld: "scope", Reden: fmt.Sprintf("onbekende scope %q", sel.Scope)}
		}
		for _, taak := range sel.Taken {
			if err := valideerAantal(fmt.Sprintf("%s/%s", sel.Scope, taak.TaakKey), taak.Hoeveelheid); err != nil {
				return err
			}
		}
		for _, mat := range sel.Materialen {
			if err := valideerAantal(fmt.Sprintf("%s/%s", sel.Scope, mat.ProductID), mat.Hoeveelheid); err != nil {
				return err
			}
		}
	}
	return nil
}

func valideerAantal(veld string, hoeveelheid float64) error {
	if math.IsNaN(hoeveelheid) || math.IsInf(hoeveelheid, 0) {
		return &InvalidInputError{Veld: veld, Reden: "hoeveelheid is niet eindig"}
	}
	if hoeveelheid < 0 {
		return &InvalidInputError{Veld: veld, Reden: "hoeveelheid mag niet negatief zijn"}
	}
	return nil
}

func valideerPercentage(veld string, pct float64) error {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
		return &InvalidInputError{Veld: veld, Reden: "percentage moet tussen 0 en 100 liggen"}
	}
	return nil
}

func aantalPosten(invoer Invoer) int {
	n := 0
	for _, sel := range invoer.ScopeSelecties {
		n += len(sel.Taken) + len(sel.Materialen)
	}
	return n
}

func regelID(scopeIndex, volgnummer int, soort, key string) uuid.UUID {
	return uuid.NewSHA1(regelNamespace, []byte(fmt.Sprintf("%d/%d/%s/%s", scopeIndex, volgnummer, soort, key)))
}
