package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognicore/revtrend/pkg/revtrend/lang"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

func sample() Report {
	return Report{
		Total: 4,
		Classes: []ClassReport{
			{
				Sentiment: review.Positive,
				Count:     3,
				Summary:   "Les clients saluent la rapidité du service.",
				Trends: trend.List{
					{Text: "service client très rapide", Support: 5, Evidence: []string{"le service client est rapide"}},
					{Text: "livraison du colis soignée", Support: 3},
				},
			},
			{Sentiment: review.Negative, Count: 1, Summary: "Aucune idée générale détectée."},
			{Sentiment: review.Neutral, Count: 0, Summary: "Aucune idée générale détectée."},
		},
	}
}

func TestRenderLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sample(), Options{}); err != nil {
		t.Fatal(err)
	}
	want := "Répartition des sentiments :\n" +
		"Positifs : 3 avis (75.00%)\n" +
		"Négatifs : 1 avis (25.00%)\n" +
		"Neutres  : 0 avis (0.00%)\n\n" +
		"**Synthèse des avis positifs :**\n" +
		"Les clients saluent la rapidité du service.\n\n" +
		"**Tendances extraites (positif) :**\n" +
		"- service client très rapide\n" +
		"- livraison du colis soignée\n\n" +
		"**Synthèse des avis négatifs :**\n" +
		"Aucune idée générale détectée.\n\n" +
		"**Tendances extraites (négatif) :**\n" +
		"- Aucune tendance détectée\n\n" +
		"**Synthèse des avis neutres :**\n" +
		"Aucune idée générale détectée.\n\n" +
		"**Tendances extraites (neutre) :**\n" +
		"- Aucune tendance détectée\n\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRenderEvidence(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sample(), Options{ShowEvidence: true})
	if !strings.Contains(buf.String(), "- service client très rapide (le service client est rapide)\n") {
		t.Errorf("evidence not rendered:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "- livraison du colis soignée\n") {
		t.Errorf("trend without evidence should render bare:\n%s", buf.String())
	}
}

func TestRenderEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Report{}, Options{Profile: lang.English()}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Sentiment distribution:\nPositive : 0 reviews (0.00%)\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if strings.Count(out, "- No trend detected\n") != 3 {
		t.Errorf("expected the sentinel bullet for each class:\n%s", out)
	}
}

func TestPercent(t *testing.T) {
	r := sample()
	if got := r.Percent(review.Positive); got != 75 {
		t.Errorf("Percent = %v", got)
	}
	if got := (Report{}).Percent(review.Positive); got != 0 {
		t.Errorf("Percent on empty report = %v", got)
	}
}
