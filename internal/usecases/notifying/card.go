package notifying

import (
	"fmt"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ações tratadas pelo callback de interação do Google Chat
const (
	ActionAcknowledge = "acknowledge_anomaly"
	ActionViewDetails = "view_details"

	ParamAnomalyIDs   = "anomaly_ids"
	ParamAcknowledged = "acknowledged"
)

const (
	metaImageURL      = "https://www.facebook.com/images/fb_icon_325x325.png"
	googleAdsImageURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c7/Google_Ads_logo.svg/512px-Google_Ads_logo.svg.png"
)

// ChatMessage é o payload de cartão (v1) aceito pelo webhook do Google Chat
type ChatMessage struct {
	Text  string `json:"text,omitempty"`
	Cards []Card `json:"cards,omitempty"`
}

type Card struct {
	Header   *CardHeader `json:"header,omitempty"`
	Sections []Section   `json:"sections"`
}

type CardHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Section struct {
	Header  string   `json:"header,omitempty"`
	Widgets []Widget `json:"widgets"`
}

type Widget struct {
	TextParagraph *TextParagraph `json:"textParagraph,omitempty"`
	Buttons       []Button       `json:"buttons,omitempty"`
}

type TextParagraph struct {
	Text string `json:"text"`
}

type Button struct {
	TextButton *TextButton `json:"textButton"`
}

type TextButton struct {
	Text    string  `json:"text"`
	OnClick OnClick `json:"onClick"`
}

type OnClick struct {
	OpenLink *OpenLink `json:"openLink,omitempty"`
	Action   *Action   `json:"action,omitempty"`
}

type OpenLink struct {
	URL string `json:"url"`
}

type Action struct {
	ActionMethodName string            `json:"actionMethodName"`
	Parameters       []ActionParameter `json:"parameters,omitempty"`
}

type ActionParameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CardOptions limita o tamanho das seções do cartão
type CardOptions struct {
	MaxCriticalItems int
	MaxNewItems      int
}

func DefaultCardOptions() CardOptions {
	return CardOptions{MaxCriticalItems: 3, MaxNewItems: 3}
}

// BuildCard monta o cartão de alerta de uma plataforma. Apenas apresentação:
// a classificação de cada anomalia é usada como veio do detector. Retorna nil
// quando não há anomalias.
func BuildCard(platform domain.Platform, anomalies []*domain.Anomaly, now time.Time, opts CardOptions) *ChatMessage {
	if len(anomalies) == 0 {
		return nil
	}
	if opts.MaxCriticalItems <= 0 {
		opts.MaxCriticalItems = 3
	}
	if opts.MaxNewItems <= 0 {
		opts.MaxNewItems = 3
	}

	var critical, warning, newCampaigns, zombies []*domain.Anomaly
	for _, anomaly := range anomalies {
		switch anomaly.Category {
		case domain.CategoryBudgetIncreaseCritical:
			critical = append(critical, anomaly)
		case domain.CategoryBudgetIncreaseWarning:
			warning = append(warning, anomaly)
		case domain.CategoryNewCampaign:
			newCampaigns = append(newCampaigns, anomaly)
		case domain.CategoryZombieCampaign:
			zombies = append(zombies, anomaly)
		}
	}

	card := Card{
		Header: &CardHeader{
			Title:    fmt.Sprintf("🚨 %s Budget Alert", platform.DisplayName()),
			Subtitle: fmt.Sprintf("Detected %d budget anomalies", len(anomalies)),
			ImageURL: headerImage(platform),
		},
		Sections: make([]Section, 0, 5),
	}

	if len(critical) > 0 {
		card.Sections = append(card.Sections, criticalSection(platform, sortByBudget(critical), opts.MaxCriticalItems))
	}

	if len(newCampaigns) > 0 {
		card.Sections = append(card.Sections, newCampaignSection(platform, sortByBudget(newCampaigns), opts.MaxNewItems))
	}

	if summary := summarySection(warning, zombies); summary != nil {
		card.Sections = append(card.Sections, *summary)
	}

	card.Sections = append(card.Sections, insightsSection(anomalies, now))
	card.Sections = append(card.Sections, actionSection(anomalies))

	return &ChatMessage{Cards: []Card{card}}
}

func criticalSection(platform domain.Platform, critical []*domain.Anomaly, limit int) Section {
	section := Section{Header: "⛔ CRITICAL ALERTS"}

	for i, anomaly := range critical {
		if i >= limit {
			break
		}
		section.Widgets = append(section.Widgets,
			Widget{TextParagraph: &TextParagraph{Text: fmt.Sprintf(
				"<b>%s</b><br><b>CAMPAIGN:</b> %s<br>🔴 %s",
				accountLabel(anomaly), anomaly.CampaignName, anomaly.Message,
			)}},
			Widget{Buttons: []Button{platformLink(platform, anomaly.AccountID)}},
		)
	}

	if remaining := len(critical) - limit; remaining > 0 {
		section.Widgets = append(section.Widgets, Widget{TextParagraph: &TextParagraph{
			Text: fmt.Sprintf("⛔ <b>+%d additional CRITICAL alerts</b> (see dashboard for details)", remaining),
		}})
	}

	return section
}

func newCampaignSection(platform domain.Platform, campaigns []*domain.Anomaly, limit int) Section {
	section := Section{Header: "🆕 NEW HIGH-BUDGET CAMPAIGNS"}

	for i, anomaly := range campaigns {
		if i >= limit {
			break
		}
		section.Widgets = append(section.Widgets,
			Widget{TextParagraph: &TextParagraph{Text: fmt.Sprintf(
				"<b>%s</b><br><b>CAMPAIGN:</b> %s<br>🆕 $%s %s %s budget",
				accountLabel(anomaly), anomaly.CampaignName,
				utils.FormatThousands(anomaly.CurrentBudget), anomaly.Currency, anomaly.BudgetType,
			)}},
			Widget{Buttons: []Button{platformLink(platform, anomaly.AccountID)}},
		)
	}

	if remaining := len(campaigns) - limit; remaining > 0 {
		section.Widgets = append(section.Widgets, Widget{TextParagraph: &TextParagraph{
			Text: fmt.Sprintf("🆕 <b>+%d additional NEW high-budget campaigns</b> (see dashboard for details)", remaining),
		}})
	}

	return section
}

func summarySection(warning, zombies []*domain.Anomaly) *Section {
	if len(warning) == 0 && len(zombies) == 0 {
		return nil
	}

	section := Section{Header: "📋 OTHER ALERTS"}
	if len(zombies) > 0 {
		section.Widgets = append(section.Widgets, Widget{TextParagraph: &TextParagraph{
			Text: fmt.Sprintf("🧟 <b>%d ZOMBIE campaigns</b> - High budget but cannot deliver", len(zombies)),
		}})
	}
	if len(warning) > 0 {
		section.Widgets = append(section.Widgets, Widget{TextParagraph: &TextParagraph{
			Text: fmt.Sprintf("🟡 <b>%d WARNING alerts</b> - Budget increases above threshold", len(warning)),
		}})
	}

	return &section
}

func insightsSection(anomalies []*domain.Anomaly, now time.Time) Section {
	period := "off-hours"
	if anomalies[0].BusinessHoursContext == domain.BusinessHours {
		period = "business hours"
	}

	return Section{Widgets: []Widget{{TextParagraph: &TextParagraph{
		Text: fmt.Sprintf("💡 <b>Insights:</b> Anomalies detected during %s.<br><i>Detected at: %s</i>",
			period, now.Format("2006-01-02 15:04 MST")),
	}}}}
}

func actionSection(anomalies []*domain.Anomaly) Section {
	ids := make([]string, 0, len(anomalies))
	for _, anomaly := range anomalies {
		ids = append(ids, anomaly.AnomalyID)
	}
	encoded, _ := json.MarshalToString(ids)

	action := func(text, method, acknowledged string) Button {
		params := []ActionParameter{{Key: ParamAnomalyIDs, Value: encoded}}
		if acknowledged != "" {
			params = append(params, ActionParameter{Key: ParamAcknowledged, Value: acknowledged})
		}
		return Button{TextButton: &TextButton{
			Text:    text,
			OnClick: OnClick{Action: &Action{ActionMethodName: method, Parameters: params}},
		}}
	}

	return Section{Widgets: []Widget{{Buttons: []Button{
		action("✅ ACKNOWLEDGE", ActionAcknowledge, "true"),
		action("❌ FALSE POSITIVE", ActionAcknowledge, "false"),
		action("🔍 VIEW DETAILS", ActionViewDetails, ""),
	}}}}
}

func platformLink(platform domain.Platform, accountID string) Button {
	text, url := "VIEW IN ADS MANAGER", "https://business.facebook.com/adsmanager/manage/campaigns?act="+accountID
	if platform == domain.PlatformGoogleAds {
		text, url = "VIEW IN GOOGLE ADS", "https://ads.google.com/aw/campaigns?ocid="+accountID
	}

	return Button{TextButton: &TextButton{Text: text, OnClick: OnClick{OpenLink: &OpenLink{URL: url}}}}
}

func headerImage(platform domain.Platform) string {
	if platform == domain.PlatformGoogleAds {
		return googleAdsImageURL
	}
	return metaImageURL
}

func accountLabel(anomaly *domain.Anomaly) string {
	if anomaly.AccountName != "" {
		return anomaly.AccountName
	}
	return "Account " + anomaly.AccountID
}

// sortByBudget ordena por orçamento atual decrescente sem alterar o slice original
func sortByBudget(anomalies []*domain.Anomaly) []*domain.Anomaly {
	sorted := make([]*domain.Anomaly, len(anomalies))
	copy(sorted, anomalies)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CurrentBudget != sorted[j].CurrentBudget {
			return sorted[i].CurrentBudget > sorted[j].CurrentBudget
		}
		return sorted[i].AnomalyID < sorted[j].AnomalyID
	})
	return sorted
}
