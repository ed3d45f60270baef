package domain

// FallbackInterpretation is returned for any (body, sign) pair without a
// curated text. Absence is a defined case, not an error.
const FallbackInterpretation = "interpretação em preparação para esta combinação"

type bodySign struct {
	body string
	sign string
}

// interpretations is the curated text table. Only the Sun carries full
// twelve-sign coverage; every other pair falls back.
var interpretations = map[bodySign]string{
	{BodySun, "Áries"}:       "iniciativa e coragem marcam sua identidade; você age antes de hesitar",
	{BodySun, "Touro"}:       "estabilidade e sentido prático sustentam sua essência; constrói devagar e com firmeza",
	{BodySun, "Gêmeos"}:      "curiosidade e versatilidade definem você; a palavra é sua ferramenta natural",
	{BodySun, "Câncer"}:      "sensibilidade e memória afetiva orientam suas escolhas; o lar é seu centro",
	{BodySun, "Leão"}:        "expressão criativa e generosidade iluminam sua presença; você lidera pelo coração",
	{BodySun, "Virgem"}:      "precisão e vontade de servir organizam sua vida; o detalhe importa",
	{BodySun, "Libra"}:       "equilíbrio e senso estético guiam você; decide melhor em parceria",
	{BodySun, "Escorpião"}:   "intensidade e poder de regeneração movem você; nada fica na superfície",
	{BodySun, "Sagitário"}:   "busca de sentido e horizonte amplo animam você; a liberdade é inegociável",
	{BodySun, "Capricórnio"}: "disciplina e ambição de longo prazo estruturam você; escala a montanha inteira",
	{BodySun, "Aquário"}:     "originalidade e espírito coletivo definem você; pensa adiante do próprio tempo",
	{BodySun, "Peixes"}:      "imaginação e empatia dissolvem suas fronteiras; você sente o que o outro sente",
}

// InterpretationOf returns the curated text for a body in a sign, or
// FallbackInterpretation when the pair has no entry. Pure lookup, no error path.
func InterpretationOf(body, sign string) string {
	if text, ok := interpretations[bodySign{body, sign}]; ok {
		return text
	}
	return FallbackInterpretation
}
