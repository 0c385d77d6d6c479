package campanha

// CampanhaRequest são os termos enviados pelo formulário de campanha.
// Qualquer campo derivado presente no payload é ignorado.
type CampanhaRequest struct {
	MetaCaptacao         float64            `json:"metaCaptacao"`
	EquityOfertado       float64            `json:"equityOfertado"`
	QtdReserva           int                `json:"qtdReserva"`
	DistribuicaoRecursos map[string]float64 `json:"distribuicaoRecursos"`
	Rascunho             bool               `json:"rascunho"`
}
