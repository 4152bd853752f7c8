package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[38;5;248m"
	bgRed       = "\033[41m"
	bgGreen     = "\033[42m"
	bgYellow    = "\033[43m"
)

const (
	fiveHourWindow = 5 * time.Hour
	sevenDayWindow = 7 * 24 * time.Hour
)

// Window is one usage window prepared for display.
type Window struct {
	Label    string
	Length   time.Duration
	Metric   types.UsageMetric
	ResetsAt time.Time // zero if unknown
}

// Windows lists the windows present in usage, optional ones only when the
// API reported them.
func Windows(usage *types.UsageResponse) []Window {
	windows := []Window{
		newWindow("5h", fiveHourWindow, usage.FiveHour),
		newWindow("7d", sevenDayWindow, usage.SevenDay),
	}
	if usage.SevenDayOpus != nil {
		windows = append(windows, newWindow("opus", sevenDayWindow, *usage.SevenDayOpus))
	}
	if usage.SevenDaySonnet != nil {
		windows = append(windows, newWindow("sonnet", sevenDayWindow, *usage.SevenDaySonnet))
	}
	return windows
}

func newWindow(label string, length time.Duration, m types.UsageMetric) Window {
	w := Window{Label: label, Length: length, Metric: m}
	if m.ResetsAt != nil {
		if t, err := time.Parse(time.RFC3339, *m.ResetsAt); err == nil {
			w.ResetsAt = t
		} else {
			config.DebugLog("Unparseable resets_at %q: %v", *m.ResetsAt, err)
		}
	}
	return w
}

// ShouldColor reports whether stdout is a terminal and colors are enabled.
func ShouldColor(cfg *config.Config) bool {
	return !cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatUsageLine renders the simple layout:
// 5h 42% ⇈ 2h10m | 7d 13% 3d4h
func FormatUsageLine(usage *types.UsageResponse, now time.Time) string {
	cfg := config.Get()
	var parts []string

	for _, w := range Windows(usage) {
		pct := w.Metric.Utilization
		fg, bg := usageColors(pct)

		part := fmt.Sprintf("%s %.0f%%", w.Label, pct)
		if !w.ResetsAt.IsZero() {
			if pct >= 100 {
				// At limit: show when it resets (local time)
				layout := "15:04"
				if w.Length > 24*time.Hour {
					layout = "Jan 2 15:04"
				}
				part += " until " + w.ResetsAt.Local().Format(layout)
			} else {
				part += calculateProjection(pct, w.ResetsAt, w.Length, now, fg)
				if remaining := w.ResetsAt.Sub(now); remaining > 0 {
					part += " " + formatDurationDays(remaining)
				}
			}
		}
		parts = append(parts, colorize(part, fg, bg, cfg))
	}

	return strings.Join(parts, " | ")
}

// FormatUsageTable renders the detailed layout.
func FormatUsageTable(usage *types.UsageResponse, now time.Time) string {
	cfg := config.Get()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Window", "Used", "Resets in", "Resets at"})
	for _, w := range Windows(usage) {
		fg, bg := usageColors(w.Metric.Utilization)
		resetsIn, resetsAt := "-", "-"
		if !w.ResetsAt.IsZero() {
			resetsIn = formatDurationDays(w.ResetsAt.Sub(now))
			resetsAt = w.ResetsAt.Local().Format("Mon Jan 2 15:04")
		}
		tw.AppendRow(table.Row{
			w.Label,
			colorize(fmt.Sprintf("%5.1f%%", w.Metric.Utilization), fg, bg, cfg),
			resetsIn,
			resetsAt,
		})
	}
	return tw.Render()
}

// FormatStatus renders an AuthStatus with guidance for the user.
func FormatStatus(st types.AuthStatus) string {
	cfg := config.Get()

	if st.Authenticated {
		line := colorize("authenticated", colorGreen, bgGreen, cfg)
		if st.ExpiresAt != nil {
			line += ", token expires " + time.UnixMilli(*st.ExpiresAt).Local().Format("Jan 2 15:04")
		}
		return line
	}

	reason := "unknown"
	if st.ErrorReason != nil {
		reason = *st.ErrorReason
	}

	var b strings.Builder
	b.WriteString(colorize("not authenticated", colorRed, bgRed, cfg))
	b.WriteString(" (" + reason + ")\n")
	switch reason {
	case "token_expired":
		if st.ExpiresAt != nil {
			b.WriteString("Token expired " + time.UnixMilli(*st.ExpiresAt).Local().Format("Jan 2 15:04") + ".\n")
		}
		b.WriteString("Run 'claude' and log in again to refresh it.")
	case "not_found", "no_oauth":
		b.WriteString("Run 'claude' and log in. Expected credentials at " + st.CredentialsPath)
	default:
		b.WriteString("Check the credentials at " + st.CredentialsPath)
	}
	return b.String()
}

func usageColors(pct float64) (string, string) {
	switch {
	case pct >= 90:
		return colorRed, bgRed
	case pct >= 75:
		return colorYellow, bgYellow
	default:
		return colorGreen, bgGreen
	}
}

func colorize(text, fgColor, bgColor string, cfg *config.Config) string {
	if cfg.NoColor {
		return text
	}

	switch cfg.DisplayMode {
	case "minimal":
		return colorGray + text + colorReset
	case "background":
		return bgColor + " " + text + " " + colorReset
	default: // colors
		return fgColor + text + colorReset
	}
}

func formatDurationDays(d time.Duration) string {
	if d < 0 {
		return "0m"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}

	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// calculateProjection compares usage with the share of the window that has
// elapsed and returns an arrow when usage is more than 5% off that pace.
func calculateProjection(usagePercent float64, resetTime time.Time, totalWindow time.Duration, now time.Time, baseColor string) string {
	if usagePercent >= 100 {
		return ""
	}

	remaining := resetTime.Sub(now)
	if remaining <= 0 {
		return ""
	}

	elapsed := totalWindow - remaining
	if elapsed <= 0 || totalWindow <= 0 {
		return ""
	}

	expectedPercent := (float64(elapsed) / float64(totalWindow)) * 100

	var arrow string
	switch {
	case usagePercent > expectedPercent*1.25:
		arrow = "⮝"
	case usagePercent > expectedPercent*1.05:
		arrow = "⇈"
	case usagePercent < expectedPercent*0.75:
		arrow = "⮟"
	case usagePercent < expectedPercent*0.95:
		arrow = "⇊"
	default:
		return ""
	}

	// Trending over is always red; the caller colors the rest.
	if usagePercent > expectedPercent*1.05 && baseColor != colorRed && !config.Get().NoColor {
		return " " + colorRed + arrow + baseColor
	}
	return " " + arrow
}
