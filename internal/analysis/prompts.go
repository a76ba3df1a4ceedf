package analysis

import "fmt"

// Prompt templates per analysis type. Each one asks for a JSON body with a
// risk_score/confidence pair so the classifier has its inputs.
var analysisPrompts = map[AnalysisType]string{
	FraudDetection: `Analiza este documento DTE chileno para detectar posibles fraudes o anomalías:

Revisa específicamente:
1. Coherencia entre montos totales y subtotales
2. Validez de RUT emisor y receptor
3. Fechas lógicas de emisión vs vencimiento
4. Códigos de productos/servicios válidos
5. Cálculos de IVA y otros impuestos
6. Patrones inusuales en cantidades o precios

Documento: %s

Responde en JSON con:
- "anomalies": lista de anomalías detectadas
- "risk_score": puntuación 0.0-1.0 (0=sin riesgo, 1=muy riesgoso)
- "recommendations": acciones recomendadas
- "confidence": confianza del análisis 0.0-1.0`,

	ComplianceCheck: `Verifica el cumplimiento normativo SII de este documento DTE:

Valida:
1. Formato correcto según normativa vigente
2. Campos obligatorios presentes
3. Rangos de folios válidos
4. Certificación digital válida
5. Esquemas XML conformes
6. Plazos de emisión cumplidos

Documento: %s

Responde en JSON con:
- "compliance_issues": lista de incumplimientos
- "risk_score": puntuación 0.0-1.0
- "required_actions": acciones obligatorias
- "confidence": confianza del análisis 0.0-1.0`,

	FinancialAnalysis: `Realiza análisis financiero de este documento DTE:

Analiza:
1. Consistencia en precios unitarios
2. Márgenes y descuentos aplicados
3. Impacto tributario (IVA, retenciones)
4. Categorización contable sugerida
5. Flujo de caja proyectado
6. Indicadores financieros relevantes

Documento: %s

Responde en JSON con:
- "financial_metrics": métricas calculadas
- "risk_score": puntuación 0.0-1.0
- "accounting_suggestions": sugerencias contables
- "confidence": confianza del análisis 0.0-1.0`,

	PatternAnalysis: `Identifica patrones en este documento DTE:

Busca:
1. Patrones de consumo del cliente
2. Estacionalidad en productos/servicios
3. Frecuencia de transacciones
4. Comportamientos atípicos
5. Tendencias de crecimiento
6. Comparación con promedios históricos

Documento: %s

Responde en JSON con:
- "patterns_found": patrones identificados
- "risk_score": puntuación 0.0-1.0
- "predictions": predicciones futuras
- "confidence": confianza del análisis 0.0-1.0`,
}

// BuildAnalysisPrompt selects the template family for the analysis type and
// embeds the serialized document. Unknown types use the fraud detection
// template as an explicit default, not an error.
func BuildAnalysisPrompt(analysisType AnalysisType, documentJSON string) string {
	template, ok := analysisPrompts[analysisType]
	if !ok {
		template = analysisPrompts[FraudDetection]
	}
	return fmt.Sprintf(template, documentJSON)
}
