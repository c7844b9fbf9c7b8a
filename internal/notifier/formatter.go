package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"SwingScout/internal/model"
)

// FormatScanReport formats the strong matches of one scan run into a
// Telegram message. An empty match list still produces a short report so the
// chat shows the scan ran.
func FormatScanReport(matches []model.MatchRow) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔎 <b>SwingScout scan</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(matches) == 0 {
		b.WriteString("No strong matches today.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("<b>%d strong match(es):</b>\n\n", len(matches)))
	for _, m := range matches {
		b.WriteString(fmt.Sprintf("📈 <b>%s</b> — score %.0f\n", m.Meta.Symbol, m.Score.Score))
		if m.Meta.Name != "" {
			b.WriteString(fmt.Sprintf("   %s\n", m.Meta.Name))
		}
		b.WriteString(fmt.Sprintf("   Close %.2f | $vol %s\n",
			m.Indicators.Close, dollars(m.Indicators.AvgDollarVol20)))
		for _, hit := range m.Score.Why {
			b.WriteString(fmt.Sprintf("   • %s: %s\n", hit.Label, hit.Value))
		}
		if m.News != nil {
			b.WriteString(fmt.Sprintf("   News: %s, %s\n", m.News.Label, strings.ToLower(string(m.News.Trend))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTriggeredAlert formats an alert for watchlist items promoted to
// Triggered during a refresh run.
func FormatTriggeredAlert(symbols []string) string {
	var b strings.Builder
	b.WriteString("🚨 <b>Watchlist triggered</b>\n\n")
	for _, sym := range symbols {
		b.WriteString(fmt.Sprintf("• %s\n", sym))
	}
	b.WriteString(fmt.Sprintf("\n%s", time.Now().Format("2006-01-02 15:04")))
	return b.String()
}

func dollars(v float64) string {
	return "$" + humanize.Comma(int64(v))
}
