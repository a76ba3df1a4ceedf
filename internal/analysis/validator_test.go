package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFactura() map[string]interface{} {
	return map[string]interface{}{
		"RUTEmisor": "12.345.678-5",
		"RUTRecep":  "11111111-1",
		"FchEmis":   "2025-06-01",
		"MntTotal":  119000.0,
	}
}

func TestValidateDocumentStructure(t *testing.T) {
	t.Run("valid factura", func(t *testing.T) {
		result := ValidateDocumentStructure(validFactura(), "factura")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, "factura", result.DocumentType)
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := validFactura()
		delete(doc, "FchEmis")
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "Campo obligatorio faltante: FchEmis")
	})

	t.Run("invalid issuer rut is an error", func(t *testing.T) {
		doc := validFactura()
		doc["RUTEmisor"] = "12.345.678-9"
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "RUT Emisor inválido")
	})

	t.Run("invalid recipient rut is only a warning", func(t *testing.T) {
		doc := validFactura()
		doc["RUTRecep"] = "11111111-9"
		result := ValidateDocumentStructure(doc, "factura")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.Contains(t, result.Warnings, "RUT Receptor podría ser inválido")
	})

	t.Run("non-numeric total", func(t *testing.T) {
		doc := validFactura()
		doc["MntTotal"] = "ciento diecinueve mil"
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "Monto total debe ser numérico")
	})

	t.Run("numeric string total accepted", func(t *testing.T) {
		doc := validFactura()
		doc["MntTotal"] = "119000"
		result := ValidateDocumentStructure(doc, "factura")
		assert.True(t, result.IsValid)
	})

	t.Run("zero total", func(t *testing.T) {
		doc := validFactura()
		doc["MntTotal"] = 0.0
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "Monto total debe ser positivo")
	})

	t.Run("negative total", func(t *testing.T) {
		doc := validFactura()
		doc["MntTotal"] = -100.0
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "Monto total debe ser positivo")
	})

	t.Run("boleta does not require recipient rut", func(t *testing.T) {
		doc := map[string]interface{}{
			"RUTEmisor": "12.345.678-5",
			"FchEmis":   "2025-06-01",
			"MntTotal":  5000.0,
		}
		result := ValidateDocumentStructure(doc, "boleta")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("unknown type has no required fields", func(t *testing.T) {
		result := ValidateDocumentStructure(map[string]interface{}{}, "guia_despacho")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("accumulates multiple errors", func(t *testing.T) {
		doc := map[string]interface{}{
			"RUTEmisor": "bad-rut",
			"MntTotal":  -1.0,
		}
		result := ValidateDocumentStructure(doc, "factura")
		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 4) // two missing fields, bad RUT, bad total
	})
}
