package tailoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmercado/resume-tailor/internal/types"
)

func exactMatch(text string, category types.TermCategory) types.Match {
	return types.Match{
		Term:       types.Term{Text: text, Category: category},
		Kind:       types.MatchExact,
		Confidence: 1.0,
	}
}

func countInjections(bullets []types.TailoredBullet, term string) int {
	count := 0
	for _, b := range bullets {
		if b.Injected != nil && b.Injected.Text == term {
			count++
		}
	}
	return count
}

func TestEnhanceBullets_GlobalUsageCap(t *testing.T) {
	bullets := []string{
		"Developed reports for finance leadership.",
		"Built dashboards tracking system performance.",
		"Designed data pipeline monitoring.",
	}
	matches := []types.Match{exactMatch("SQL", types.CategoryTechnologies)}

	out := EnhanceBullets(bullets, matches)
	require.Len(t, out, 3)

	assert.LessOrEqual(t, countInjections(out, "SQL"), termUsageCap,
		"a term may be injected into at most one bullet per run")
}

func TestEnhanceBullets_AtMostOneTermPerBullet(t *testing.T) {
	bullets := []string{"Developed reporting dashboards for operations."}
	matches := []types.Match{
		exactMatch("SQL", types.CategoryTechnologies),
		exactMatch("Tableau", types.CategoryTechnologies),
	}

	out := EnhanceBullets(bullets, matches)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Injected)

	injected := 0
	for _, m := range matches {
		if strings.Contains(out[0].Final, m.Term.Text) {
			injected++
		}
	}
	assert.Equal(t, 1, injected)
}

func TestEnhanceBullets_AdministrativeBulletRejectsTechTerm(t *testing.T) {
	bullets := []string{"Scheduled appointments and greeted visitors daily."}
	matches := []types.Match{exactMatch("SQL", types.CategoryTechnologies)}

	out := EnhanceBullets(bullets, matches)
	require.Len(t, out, 1)

	assert.Nil(t, out[0].Injected)
	assert.Equal(t, bullets[0], out[0].Final, "low-scoring bullets are returned unmodified")
}

func TestEnhanceBullets_AdministrativeBulletRejectsDomainTerm(t *testing.T) {
	bullets := []string{"Filed records and sorted incoming mail for reception."}
	matches := []types.Match{exactMatch("revenue cycle", types.CategoryDomain)}

	out := EnhanceBullets(bullets, matches)
	assert.Nil(t, out[0].Injected)
}

func TestEnhanceBullets_SkipsTermsAlreadyPresent(t *testing.T) {
	bullets := []string{"Built SQL reports for month-end close."}
	matches := []types.Match{exactMatch("SQL", types.CategoryTechnologies)}

	out := EnhanceBullets(bullets, matches)
	assert.Nil(t, out[0].Injected)
	assert.Equal(t, bullets[0], out[0].Final)
}

func TestEnhanceBullets_PreservesFinalPunctuation(t *testing.T) {
	bullets := []string{"Streamlined reporting workflows."}
	matches := []types.Match{exactMatch("SAP", types.CategorySystems)}

	out := EnhanceBullets(bullets, matches)
	require.NotNil(t, out[0].Injected)
	assert.True(t, strings.HasSuffix(out[0].Final, "."))
	assert.False(t, strings.HasSuffix(out[0].Final, ".."))
}

func TestInsertTerm_AfterCommaList(t *testing.T) {
	out := insertTerm("Built dashboards in Excel, Access.", "Power BI")
	assert.Equal(t, "Built dashboards in Excel, Access, Power BI.", out)
}

func TestInsertTerm_AfterPrepositionPhrase(t *testing.T) {
	out := insertTerm("Automated reporting using Python.", "Airflow")
	assert.Equal(t, "Automated reporting using Python and Airflow.", out)
}

func TestInsertTerm_TrailingClause(t *testing.T) {
	out := insertTerm("Streamlined reporting workflows.", "SAP")
	assert.Equal(t, "Streamlined reporting workflows using SAP.", out)
}

func TestInsertTerm_VerbPhraseBeforeComma(t *testing.T) {
	out := insertTerm("Built reporting tooling, cutting close time by 20%.", "SQL")
	assert.Equal(t, "Built reporting tooling using SQL, cutting close time by 20%.", out)
}

func TestInsertTerm_NoPunctuation(t *testing.T) {
	out := insertTerm("Maintained data quality checks", "dbt")
	assert.Equal(t, "Maintained data quality checks using dbt", out)
}

func TestEnhanceBullets_PreservesOrderAndLength(t *testing.T) {
	bullets := []string{"First bullet.", "Second bullet.", "Third bullet."}

	out := EnhanceBullets(bullets, nil)
	require.Len(t, out, 3)
	for i, b := range out {
		assert.Equal(t, bullets[i], b.Original)
		assert.Equal(t, bullets[i], b.Final)
	}
}
