package training

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// ClassMetrics es una fila del classification report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report tiene el mismo contenido que el classification_report clásico.
// Es informativo: nada lo consume programáticamente.
type Report struct {
	Classes     [2]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
}

var classNames = [2]string{"0 (not adopted)", "1 (adopted)"}

// Evaluate calcula precision/recall/F1 por clase. Divisiones por cero dan 0.
func Evaluate(yTrue, yPred []int) Report {
	var tp, fp, fn [2]int
	correct := 0
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t == p {
			tp[t]++
			correct++
			continue
		}
		fp[p]++
		fn[t]++
	}

	var r Report
	total := len(yTrue)
	for c := 0; c < 2; c++ {
		m := ClassMetrics{
			Precision: ratio(tp[c], tp[c]+fp[c]),
			Recall:    ratio(tp[c], tp[c]+fn[c]),
			Support:   tp[c] + fn[c],
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes[c] = m

		r.MacroAvg.Precision += m.Precision / 2
		r.MacroAvg.Recall += m.Recall / 2
		r.MacroAvg.F1 += m.F1 / 2
		if total > 0 {
			w := float64(m.Support) / float64(total)
			r.WeightedAvg.Precision += m.Precision * w
			r.WeightedAvg.Recall += m.Recall * w
			r.WeightedAvg.F1 += m.F1 * w
		}
	}
	r.MacroAvg.Support = total
	r.WeightedAvg.Support = total
	r.Accuracy = ratio(correct, total)
	return r
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Render escribe el reporte como tabla.
func (r Report) Render(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("class", "precision", "recall", "f1-score", "support")

	rows := [][]string{
		metricsRow(classNames[0], r.Classes[0]),
		metricsRow(classNames[1], r.Classes[1]),
		{"accuracy", "", "", f2(r.Accuracy), fmt.Sprint(r.MacroAvg.Support)},
		metricsRow("macro avg", r.MacroAvg),
		metricsRow("weighted avg", r.WeightedAvg),
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func metricsRow(name string, m ClassMetrics) []string {
	return []string{name, f2(m.Precision), f2(m.Recall), f2(m.F1), fmt.Sprint(m.Support)}
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
