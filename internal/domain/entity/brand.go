package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Brand marca de catálogo aceptada por el servidor de registros.
type Brand string

const (
	BrandYanbal Brand = "Yanbal"
	BrandEsika  Brand = "Esika"
	BrandCyzone Brand = "Cyzone"
	BrandLbel   Brand = "Lbel"
	BrandOtra   Brand = "Otra"
)

// Brands lista en el orden en que se ofrecen al operador.
var Brands = []Brand{BrandYanbal, BrandEsika, BrandCyzone, BrandLbel, BrandOtra}

// Valid indica si la marca pertenece al enumerado.
func (b Brand) Valid() bool {
	for _, known := range Brands {
		if b == known {
			return true
		}
	}
	return false
}

// ParseBrand acepta la marca tal como la escribe el operador: sin distinguir
// mayúsculas, tildes ni signos ("L'Bel", "ÉSIKA", " yanbal ").
func ParseBrand(s string) (Brand, bool) {
	key := brandKey(s)
	if key == "" {
		return "", false
	}
	for _, b := range Brands {
		if brandKey(string(b)) == key {
			return b, true
		}
	}
	return "", false
}

func brandKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	plain = cases.Fold().String(plain)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, plain)
}
