package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/market"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// FormatAlertEmail renders the subject and HTML body for a fired price alert.
func FormatAlertEmail(a model.Alert, currentPrice float64, at time.Time) (subject, body string) {
	subject = fmt.Sprintf("🚨 Alerte prix - %s", a.Symbol)

	var b strings.Builder
	b.WriteString("<h2>Alerte de prix déclenchée</h2>\n")
	b.WriteString(fmt.Sprintf("<p><b>Symbole:</b> %s</p>\n", a.Symbol))
	b.WriteString(fmt.Sprintf("<p><b>Marché:</b> %s</p>\n", market.Exchange(a.Symbol)))
	b.WriteString(fmt.Sprintf("<p><b>Prix actuel:</b> %s</p>\n", market.FormatCurrency(currentPrice, a.Symbol)))
	b.WriteString(fmt.Sprintf("<p><b>Condition:</b> %s %s</p>\n", a.Direction, market.FormatCurrency(a.TargetPrice, a.Symbol)))
	b.WriteString(fmt.Sprintf("<p><b>Date:</b> %s (heure Paris)</p>\n", at.Format("2006-01-02 15:04:05")))
	return subject, b.String()
}

// FormatTestEmail renders the configuration test message.
func FormatTestEmail(at time.Time) (subject, body string) {
	subject = "Test de notification"
	body = fmt.Sprintf(
		"<h2>Test réussi !</h2><p>Votre configuration email fonctionne correctement !</p><p>Heure d'envoi: %s (heure Paris)</p>",
		at.Format("2006-01-02 15:04:05"))
	return subject, body
}
