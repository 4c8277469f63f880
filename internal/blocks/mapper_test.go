package blocks

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

func TestMap_KeywordsPerLanguage(t *testing.T) {
	tests := []struct {
		lang   string
		labels [4]string
	}{
		{"en", [4]string{"Warning", "Synopsis", "Weather forecast for the next 12 hours", "Outlook for the next 12 hours"}},
		{"hr", [4]string{"UPOZORENJE", "Sinoptička situacija", "Vremenska prognoza za idućih 12 sati", "Izgledi vremena za idućih 12 sati"}},
		{"de", [4]string{"Warnung", "Wetterlage", "Wettervorhersage für die nächsten 12 Stunden", "Aussichten für die weiteren 12 Stunden"}},
		{"it", [4]string{"Avviso", "Situazione meteorologica", "Previsioni del tempo per le prossime 12 ore", "Tendenza per le successive 12 ore"}},
		{"fr", [4]string{"Avertissement", "Situation générale", "Prévisions pour les 12 prochaines heures", "Tendance pour les 12 heures suivantes"}},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			// Reverse document order so classification cannot lean on position.
			sections := []domain.RawSection{
				{Label: tt.labels[3], Text: "outlook"},
				{Label: tt.labels[2], Text: "forecast"},
				{Label: tt.labels[1], Text: "synopsis"},
				{Label: tt.labels[0], Text: "warning"},
			}

			got := Map(sections)

			assert.Equal(t, domain.CanonicalBlock{Label: tt.labels[0], Text: "warning"}, got.Warning)
			assert.Equal(t, domain.CanonicalBlock{Label: tt.labels[1], Text: "synopsis"}, got.Synopsis)
			assert.Equal(t, domain.CanonicalBlock{Label: tt.labels[2], Text: "forecast"}, got.Forecast12h)
			assert.Equal(t, domain.CanonicalBlock{Label: tt.labels[3], Text: "outlook"}, got.Outlook12h)
		})
	}
}

func TestMap_ForecastRequiresTwelve(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Warning", Text: "none"},
		{Label: "Forecast for Croatia", Text: "land forecast"},
		{Label: "Forecast for the next 12 hours", Text: "sea forecast"},
	})

	assert.Equal(t, "sea forecast", got.Forecast12h.Text)
	assert.Empty(t, got.Synopsis.Label)
}

func TestMap_EachSlotClaimedOnce(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Warning", Text: "first"},
		{Label: "Warning (update)", Text: "second"},
		{Label: "Synopsis", Text: "s"},
	})

	assert.Equal(t, "first", got.Warning.Text)
	assert.Equal(t, "s", got.Synopsis.Text)
	assert.Empty(t, got.Forecast12h.Text)
	assert.Empty(t, got.Outlook12h.Text)
}

func TestMap_PositionalFallback(t *testing.T) {
	sections := []domain.RawSection{
		{Label: "A", Text: "a"},
		{Label: "B", Text: "b"},
		{Label: "C", Text: "c"},
		{Label: "D", Text: "d"},
		{Label: "E", Text: "e"},
	}

	want := domain.Blocks{
		Warning:     domain.CanonicalBlock{Label: "A", Text: "a"},
		Synopsis:    domain.CanonicalBlock{Label: "B", Text: "b"},
		Forecast12h: domain.CanonicalBlock{Label: "C", Text: "c"},
		Outlook12h:  domain.CanonicalBlock{Label: "D", Text: "d"},
	}
	if diff := cmp.Diff(want, Map(sections)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_PositionalFallbackKeepsKeywordMatch(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Intro", Text: "i"},
		{Label: "Synopsis", Text: "s"},
		{Label: "Other", Text: "o"},
	})

	want := domain.Blocks{
		Warning:     domain.CanonicalBlock{Label: "Intro", Text: "i"},
		Synopsis:    domain.CanonicalBlock{Label: "Synopsis", Text: "s"},
		Forecast12h: domain.CanonicalBlock{Label: "Other", Text: "o"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_PositionalFallbackReusesKeywordSection(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Synopsis", Text: "s"},
		{Label: "Other", Text: "o"},
	})

	want := domain.Blocks{
		Warning:  domain.CanonicalBlock{Label: "Synopsis", Text: "s"},
		Synopsis: domain.CanonicalBlock{Label: "Synopsis", Text: "s"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_LabelMatchingForecastAndOutlookGoesToForecast(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Forecast and outlook for the next 12 hours", Text: "x"},
	})

	assert.Equal(t, domain.CanonicalBlock{Label: "Forecast and outlook for the next 12 hours", Text: "x"}, got.Forecast12h)
	assert.Equal(t, domain.CanonicalBlock{}, got.Outlook12h)
}

func TestMap_SecondCombinedLabelFillsOutlook(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Forecast and outlook for the next 12 hours", Text: "first"},
		{Label: "Outlook and forecast for the following 12 hours", Text: "second"},
	})

	assert.Equal(t, "first", got.Forecast12h.Text)
	assert.Equal(t, "second", got.Outlook12h.Text)
}

func TestMap_NoPositionalFallbackWhenTwoMatched(t *testing.T) {
	got := Map([]domain.RawSection{
		{Label: "Warning", Text: "w"},
		{Label: "Synopsis", Text: "s"},
		{Label: "Something else", Text: "x"},
	})

	assert.Empty(t, got.Forecast12h.Text)
	assert.Empty(t, got.Outlook12h.Text)
}

func TestMap_SingleUnlabelledSectionNotPlaced(t *testing.T) {
	got := Map([]domain.RawSection{{Label: "Intro", Text: "i"}})
	assert.Equal(t, domain.Blocks{}, got)
}

func TestMap_AlwaysFourKeys(t *testing.T) {
	inputs := [][]domain.RawSection{
		nil,
		{{Label: "Warning", Text: "w"}},
		{{Label: "x"}, {Label: "y"}},
	}

	for _, in := range inputs {
		out, err := json.Marshal(Map(in))
		require.NoError(t, err)

		var decoded map[string]map[string]*string
		require.NoError(t, json.Unmarshal(out, &decoded))
		require.Len(t, decoded, 4)
		for _, key := range []string{"warning", "synopsis", "forecast_12h", "outlook_12h"} {
			block := decoded[key]
			require.NotNil(t, block, key)
			assert.NotNil(t, block["label"], key)
			assert.NotNil(t, block["text"], key)
		}
	}
}
