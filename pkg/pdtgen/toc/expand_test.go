package toc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

func cnRow(num, category, title string) models.TemplateRow {
	return models.TemplateRow{
		TemplateNumber: num,
		OutputType:     models.OutputTable,
		Title:          map[models.Language]string{models.LangCN: title},
		Population:     "安全性分析集",
		Category:       category,
	}
}

func mustNormalize(t *testing.T, sel Selection) Selection {
	t.Helper()
	sel, err := sel.Normalize()
	require.NoError(t, err)
	return sel
}

func refsAndTitles(rows []models.ExpandedRow) [][2]string {
	out := make([][2]string, len(rows))
	for i, r := range rows {
		out[i] = [2]string{r.OutputReference, r.Title}
	}
	return out
}

func TestExpand_SingleDesign(t *testing.T) {
	sel := mustNormalize(t, Selection{DesignTypes: []models.DesignType{models.DesignSAD}})
	got := Expand([]models.TemplateRow{cnRow("14.1", "demography", "受试者分布")}, sel)

	want := [][2]string{{"14.1", "受试者分布"}}
	if diff := cmp.Diff(want, refsAndTitles(got)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "安全性分析集", got[0].Population)
	assert.Equal(t, models.OutputTable, got[0].OutputType)
}

func TestExpand_TwoDesigns(t *testing.T) {
	sel := mustNormalize(t, Selection{DesignTypes: []models.DesignType{models.DesignSAD, models.DesignMAD}})
	got := Expand([]models.TemplateRow{cnRow("14.1", "demography", "受试者分布")}, sel)

	want := [][2]string{
		{"14.1.1", "受试者分布 - SAD"},
		{"14.1.2", "受试者分布 - MAD"},
	}
	if diff := cmp.Diff(want, refsAndTitles(got)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_Analytes(t *testing.T) {
	sel := mustNormalize(t, Selection{
		DesignTypes: []models.DesignType{models.DesignSAD},
		Endpoints:   []Endpoint{EndpointPKConcBlood},
		Analytes:    []string{"DrugX", "M1"},
	})
	got := Expand([]models.TemplateRow{cnRow("14.2", CategoryPKConc, "[Analyte] 浓度图")}, sel)

	want := [][2]string{
		{"14.2.1", "DrugX 浓度图"},
		{"14.2.2", "M1 浓度图"},
	}
	if diff := cmp.Diff(want, refsAndTitles(got)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_PlaceholderThenDesignOrdinal(t *testing.T) {
	sel := mustNormalize(t, Selection{
		DesignTypes: []models.DesignType{models.DesignSAD, models.DesignFE},
		Endpoints:   []Endpoint{EndpointPKConcBlood},
		Analytes:    []string{"DrugX", "M1"},
	})
	got := Expand([]models.TemplateRow{cnRow("14.2", CategoryPKConc, "<Analyte>血药浓度")}, sel)

	want := [][2]string{
		{"14.2.1.1", "DrugX血药浓度 - SAD"},
		{"14.2.2.1", "M1血药浓度 - SAD"},
		{"14.2.1.2", "DrugX血药浓度 - FE"},
		{"14.2.2.2", "M1血药浓度 - FE"},
	}
	if diff := cmp.Diff(want, refsAndTitles(got)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_AECategories(t *testing.T) {
	sel := mustNormalize(t, Selection{
		DesignTypes:  []models.DesignType{models.DesignMAD},
		AECategories: []string{"停药", "暂停用药"},
	})
	got := Expand([]models.TemplateRow{cnRow("14.3.1-5", "安全性", "导致[AEACN]的不良事件")}, sel)

	want := [][2]string{
		{"14.3.1-5.1", "导致停药的不良事件"},
		{"14.3.1-5.2", "导致暂停用药的不良事件"},
	}
	if diff := cmp.Diff(want, refsAndTitles(got)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_SubTypeExclusion(t *testing.T) {
	sel := mustNormalize(t, Selection{
		DesignTypes: []models.DesignType{models.DesignSAD},
		Endpoints:   []Endpoint{EndpointPKConcBlood},
	})
	rows := []models.TemplateRow{
		cnRow("14.2.1", CategoryPKConc, "血浆药物浓度"),
		cnRow("14.2.2", CategoryPKConc, "尿液药物排泄 urine"),
	}
	got := Expand(rows, sel)
	require.Len(t, got, 1)
	assert.Equal(t, "14.2.1", got[0].OutputReference)
}

func TestExpand_Properties(t *testing.T) {
	rows := []models.TemplateRow{
		cnRow("14.1", "demography", "受试者分布"),
		cnRow("14.2", CategoryPKConc, "[Analyte] 浓度图"),
		cnRow("14.3", "安全性", "不良事件汇总"),
		{TemplateNumber: "14.4", Category: "安全性", Title: map[models.Language]string{models.LangCN: "生命体征"},
			DesignFlags: map[models.DesignType]string{models.DesignMAD: "Y"}},
	}
	base := Selection{
		Endpoints: []Endpoint{EndpointPKConcBlood},
		Analytes:  []string{"DrugX", "M1", "M2"},
	}

	t.Run("idempotent", func(t *testing.T) {
		sel := base
		sel.DesignTypes = []models.DesignType{models.DesignSAD, models.DesignMAD}
		sel = mustNormalize(t, sel)
		first := Expand(rows, sel)
		second := Expand(rows, sel)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("second run differs (-first +second):\n%s", diff)
		}
	})

	t.Run("unique references", func(t *testing.T) {
		sel := base
		sel.DesignTypes = []models.DesignType{models.DesignSAD, models.DesignFE, models.DesignMAD}
		sel = mustNormalize(t, sel)
		seen := map[string]bool{}
		for _, r := range Expand(rows, sel) {
			assert.False(t, seen[r.OutputReference], "duplicate reference %s", r.OutputReference)
			seen[r.OutputReference] = true
		}
	})

	t.Run("single design omission", func(t *testing.T) {
		sel := base
		sel.DesignTypes = []models.DesignType{models.DesignMAD}
		sel = mustNormalize(t, sel)
		got := Expand(rows, sel)
		require.NotEmpty(t, got)
		for _, r := range got {
			assert.False(t, strings.HasSuffix(r.Title, " - MAD"), "title %q carries a design suffix", r.Title)
			assert.NotEqual(t, "14.1.1", r.OutputReference)
		}
		assert.Equal(t, "14.1", got[0].OutputReference)
	})
}
