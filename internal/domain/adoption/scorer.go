package adoption

import "math"

// Scorer combina Encoder + Classifier. Sin estado mutable: se comparte entre requests.
type Scorer struct {
	encoder *Encoder
	clf     Classifier
}

func NewScorer(schema *Schema, clf Classifier) (*Scorer, error) {
	if err := CheckCompatible(schema, clf); err != nil {
		return nil, err
	}
	return &Scorer{encoder: NewEncoder(schema), clf: clf}, nil
}

// EncodeAndScore devuelve la chance de adopción en porcentaje (0.00 - 100.00, dos decimales).
func (s *Scorer) EncodeAndScore(in RawCatInput) (float64, error) {
	vec, err := s.encoder.Encode(in)
	if err != nil {
		return 0, err
	}
	return ToPercentage(s.clf.PredictProba(vec)), nil
}

// ToPercentage convierte una probabilidad a porcentaje redondeado a 2 decimales.
func ToPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return math.Round(p*10000) / 100
}
