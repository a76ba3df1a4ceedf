package chat

import "strings"

// intentPatterns scores a message against fixed keyword sets. Exact phrase
// hits weigh far more than loose word overlap so that "producto más caro"
// lands on product_query even when "empresa" also appears.
var intentPatterns = map[string][]string{
	"information_request": {
		"información completa", "informacion completa", "datos empresa", "datos de la empresa",
		"resumen", "mi empresa", "información empresarial", "informacion empresarial",
		"datos completos", "toda la información", "toda la informacion",
	},
	"product_query": {
		"producto más caro", "producto mas caro", "más caro", "mas caro",
		"precio alto", "costoso", "productos", "precios", "catálogo", "catalogo",
	},
	"dte_query": {
		"dte", "documento tributario", "factura electrónica", "factura electronica",
		"boleta electrónica", "boleta electronica", "documentos", "códigos sii", "codigos sii",
		"código 33", "codigo 33", "código 39", "codigo 39",
	},
	"admin_query": {
		"administrador", "quien administra", "contacto", "email", "correo",
		"responsable", "encargado", "supervisor",
	},
	"client_query": {
		"clientes", "usuarios", "cuántos clientes", "cuantos clientes",
		"base de datos", "registros",
	},
	"general_help": {
		"ayuda", "help", "qué puedo hacer", "que puedo hacer",
		"funciones", "opciones", "comandos",
	},
}

// intentOrder fixes evaluation order so ties resolve deterministically.
var intentOrder = []string{
	"information_request", "product_query", "dte_query",
	"admin_query", "client_query", "general_help",
}

const defaultIntent = "general_help"

// DetectIntent classifies a message by keyword scoring. It never fails; an
// unmatched message falls back to general_help.
func DetectIntent(message string) string {
	lower := strings.ToLower(message)
	messageWords := wordSet(lower)

	bestIntent := defaultIntent
	bestScore := 0
	for _, intent := range intentOrder {
		patterns := intentPatterns[intent]
		score := 0
		patternWords := map[string]struct{}{}
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				score += 10
			}
			for _, w := range strings.Fields(pattern) {
				patternWords[w] = struct{}{}
			}
		}
		for w := range patternWords {
			if _, ok := messageWords[w]; ok {
				score += 2
			}
		}
		if score > bestScore {
			bestScore = score
			bestIntent = intent
		}
	}

	return bestIntent
}

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
