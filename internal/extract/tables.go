package extract

import "github.com/couchcryptid/marine-bulletin-service/internal/domain"

// DefaultTitle is used when the page offers no usable heading or <title>.
const DefaultTitle = "Marine weather forecast for the Adriatic"

// contentRootSelectors are tried in order; the first that matches scopes the
// structural scan. Most specific first.
var contentRootSelectors = []string{
	"#sadrzaj .prognoza-more",
	"#sadrzaj .prognoza",
	"div.content-main .prognoza",
	"#sadrzaj",
	"div.content-main",
	"#content",
	"main",
	"article",
}

// genericSiteNames appear in the <title>/headings of the site's landing
// pages. A title containing one of them and no date is not a bulletin.
var genericSiteNames = []string{
	"državni hidrometeorološki zavod",
	"drzavni hidrometeoroloski zavod",
	"croatian meteorological and hydrological service",
	"meteorological and hydrological service",
	"dhmz",
}

// offTopicKeywords flag section labels that belong to site chrome or other
// products rather than a marine forecast.
var offTopicKeywords = []string{
	"kontakt", "contact", "impressum", "cookies", "kolačići",
	"privacy", "privatnost", "login", "prijava",
	"news", "novosti", "vijesti", "aktualno",
	"klima", "climate", "hidrologija", "hydrology",
	"agrometeorologija", "agrometeorology",
	"about us", "o nama", "poveznice", "links",
}

// topicMarkers lists, per canonical slot, the literal headings that open
// that topic in one language. Longer phrasings come first so they win over
// their own prefixes.
type topicMarkers [len(domain.Slots)][]string

// markers is keyed by language. Adding a language is a table change.
var markers = map[domain.Lang]topicMarkers{
	domain.LangEN: {
		domain.SlotWarning:  {"warning"},
		domain.SlotSynopsis: {"synopsis", "general situation"},
		domain.SlotForecast12h: {
			"weather forecast for the next 12 hours",
			"forecast for the next 12 hours",
		},
		domain.SlotOutlook12h: {
			"outlook for the next 12 hours",
			"outlook for the following 12 hours",
		},
	},
	domain.LangHR: {
		domain.SlotWarning:  {"upozorenje"},
		domain.SlotSynopsis: {"sinoptička situacija", "opća situacija", "stanje"},
		domain.SlotForecast12h: {
			"vremenska prognoza za idućih 12 sati",
			"vremenska prognoza za sljedećih 12 sati",
			"prognoza za idućih 12 sati",
			"prognoza za sljedećih 12 sati",
		},
		domain.SlotOutlook12h: {
			"izgledi vremena za idućih 12 sati",
			"izgledi vremena za sljedećih 12 sati",
			"izgledi za idućih 12 sati",
			"izgledi za sljedećih 12 sati",
		},
	},
	domain.LangDE: {
		domain.SlotWarning:  {"unwetterwarnung", "warnung"},
		domain.SlotSynopsis: {"allgemeine wetterlage", "wetterlage"},
		domain.SlotForecast12h: {
			"wettervorhersage für die nächsten 12 stunden",
			"vorhersage für die nächsten 12 stunden",
		},
		domain.SlotOutlook12h: {
			"aussichten für die weiteren 12 stunden",
			"aussichten für die folgenden 12 stunden",
			"aussichten für die nächsten 12 stunden",
		},
	},
	domain.LangIT: {
		domain.SlotWarning:  {"avviso", "allerta"},
		domain.SlotSynopsis: {"situazione meteorologica", "situazione generale", "situazione"},
		domain.SlotForecast12h: {
			"previsioni del tempo per le prossime 12 ore",
			"previsione del tempo per le prossime 12 ore",
			"previsioni per le prossime 12 ore",
		},
		domain.SlotOutlook12h: {
			"tendenza per le successive 12 ore",
			"tendenza per le prossime 12 ore",
			"prospettive per le successive 12 ore",
		},
	},
}

// markersFor returns the marker table for lang, falling back to English.
func markersFor(lang domain.Lang) topicMarkers {
	if m, ok := markers[lang]; ok {
		return m
	}
	return markers[domain.LangEN]
}
