package chat

import (
	"fmt"
	"strings"

	"dteai/internal/business"
)

const systemPrompt = `Eres CloudMusic IA, un asistente inteligente especializado en DTE (Documentos Tributarios Electrónicos) de Chile.

CAPACIDADES PRINCIPALES:
1. CONVERSACIÓN CONTEXTUAL: mantiene coherencia y construye sobre mensajes anteriores
2. CÁLCULOS DE IVA PRECISOS (IVA Chile 19%):
   - CON IVA INCLUIDO: Valor Neto = Precio ÷ 1.19 | IVA = Precio - Valor Neto
   - SIN IVA (agregar): IVA = Precio × 0.19 | Total = Precio + IVA
3. ESPECIALIZACIÓN DTE CHILENA: normativa SII, facturación electrónica, boletas,
   notas de crédito/débito, folios CAF, certificados digitales
4. PERSONALIZACIÓN: se adapta al contexto empresarial del usuario

Responde de manera contextual, coherente y profesional.`

// BuildContextualPrompt assembles the enriched prompt: system instructions,
// company context, recent conversation turns, detected intent and the user
// message, in that order.
func BuildContextualPrompt(message, intent string, summary *business.Summary, history []Message) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if summary != nil {
		b.WriteString("\n\nCONTEXTO EMPRESARIAL:\n")
		fmt.Fprintf(&b, "- Empresa: %s (RUT %s)\n", summary.Company.DisplayName, summary.Company.RUT)
		fmt.Fprintf(&b, "- Usuarios: %d | Clientes: %d | Productos: %d | Documentos: %d\n",
			summary.Stats.TotalUsers, summary.Stats.TotalClients,
			summary.Stats.TotalProducts, summary.Stats.TotalDocuments)
	}

	if len(history) > 0 {
		b.WriteString("\nHISTORIAL RECIENTE:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "[%s]: %s\n", msg.Role, msg.Content)
		}
	}

	fmt.Fprintf(&b, "\nINTENCIÓN DETECTADA: %s", intent)
	fmt.Fprintf(&b, "\n\nUSUARIO: %s\n\nCLOUDMUSIC IA:", message)
	return b.String()
}

// BuildDirectPrompt is the minimal prompt used when enriched context is
// unavailable.
func BuildDirectPrompt(message, contextType string) string {
	return fmt.Sprintf(
		"Usuario pregunta: %s\nContexto: %s\nResponde de manera útil y profesional sobre temas de facturación electrónica chilena.",
		message, contextType,
	)
}
