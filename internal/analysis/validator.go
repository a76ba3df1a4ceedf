package analysis

import (
	"fmt"
	"strconv"
	"time"
)

// Required DTE fields per document type. Unknown types carry no required
// fields; validation degenerates to the numeric and checksum checks.
var requiredFields = map[string][]string{
	"factura":      {"RUTEmisor", "RUTRecep", "FchEmis", "MntTotal"},
	"boleta":       {"RUTEmisor", "FchEmis", "MntTotal"},
	"nota_credito": {"RUTEmisor", "RUTRecep", "FchEmis", "MntTotal"},
	"nota_debito":  {"RUTEmisor", "RUTRecep", "FchEmis", "MntTotal"},
}

// ValidateDocumentStructure runs the rule-based structural checks for a DTE.
// An invalid issuer RUT is an error; an invalid recipient RUT only a warning,
// since receiver data frequently arrives transcribed by hand.
func ValidateDocumentStructure(documentData map[string]interface{}, documentType string) ValidationResult {
	result := ValidationResult{
		IsValid:      true,
		Errors:       []string{},
		Warnings:     []string{},
		DocumentType: documentType,
		ValidatedAt:  time.Now().UTC(),
	}

	for _, field := range requiredFields[documentType] {
		if _, ok := documentData[field]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Campo obligatorio faltante: %s", field))
			result.IsValid = false
		}
	}

	if issuer, ok := documentData["RUTEmisor"]; ok {
		if !ValidateRUT(stringify(issuer)) {
			result.Errors = append(result.Errors, "RUT Emisor inválido")
			result.IsValid = false
		}
	}

	if recipient, ok := documentData["RUTRecep"]; ok {
		if !ValidateRUT(stringify(recipient)) {
			result.Warnings = append(result.Warnings, "RUT Receptor podría ser inválido")
		}
	}

	if total, ok := documentData["MntTotal"]; ok {
		amount, err := numericValue(total)
		if err != nil {
			result.Errors = append(result.Errors, "Monto total debe ser numérico")
			result.IsValid = false
		} else if amount <= 0 {
			result.Errors = append(result.Errors, "Monto total debe ser positivo")
			result.IsValid = false
		}
	}

	return result
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}
