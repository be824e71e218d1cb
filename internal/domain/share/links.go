package share

import (
	"fmt"
	"net/url"
	"strings"
)

// Text es el mensaje de compartir rápido.
func Text(name string, score int, breed string) string {
	return fmt.Sprintf(
		"Check out %s's health assessment! Overall score: %d/100. Breed: %s. Analyzed with Moo-Aaa livestock assessment app.",
		name, score, breed,
	)
}

func emailSubject(name string) string {
	return "Livestock Assessment - " + name
}

// Link arma la URL del canal. El texto se codifica como componente de URI (espacios = %20).
func Link(ch Channel, name, text string) (string, error) {
	enc := encodeComponent(text)
	switch ch {
	case ChannelWhatsApp:
		return "https://wa.me/?text=" + enc, nil
	case ChannelSMS:
		return "sms:?body=" + enc, nil
	case ChannelEmail:
		return "mailto:?subject=" + encodeComponent(emailSubject(name)) + "&body=" + enc, nil
	default:
		return "", fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, ch)
	}
}

// QueryEscape usa "+" para espacios y escapa !'()* que un componente de URI deja tal cual.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
