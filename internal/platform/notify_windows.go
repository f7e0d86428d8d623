//go:build windows

package platform

import (
	"context"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify shows a toast through the Windows notification centre.
func Notify(ctx context.Context, title, body string, opts Options) error {
	return exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-Command", toastScript(title, body, opts)).Run()
}

func toastScript(title, body string, opts Options) string {
	icon := strings.TrimSpace(opts.IconPath)
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	var sb strings.Builder
	sb.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	sb.WriteString(`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::` + kind + `); `)
	sb.WriteString(`$texts = $template.GetElementsByTagName("text"); `)
	sb.WriteString(`$texts.Item(0).AppendChild($template.CreateTextNode(` + psQuote(title) + `)) > $null; `)
	sb.WriteString(`$texts.Item(1).AppendChild($template.CreateTextNode(` + psQuote(body) + `)) > $null; `)
	if icon != "" {
		sb.WriteString(`$template.GetElementsByTagName("image").Item(0).SetAttribute("src", ` + psQuote(icon) + `); `)
	}
	sb.WriteString(`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `)
	sb.WriteString(`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(` + psQuote(opts.appName()) + `).Show($toast);`)
	return sb.String()
}
