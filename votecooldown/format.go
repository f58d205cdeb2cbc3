package votecooldown

import (
	"strconv"
	"time"
)

// FormatCountdown formata o tempo restante como HH:MM:SS.
//
// Divisão inteira (nunca arredonda para cima) e zero à esquerda; as horas podem
// passar de 99 se o cooldown for configurado maior. Valores negativos viram 00:00:00.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string {
	// sem notação científica para valores comuns
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// alreadyVotedMessage monta a mensagem do 409 a partir da janela configurada.
func alreadyVotedMessage(cooldown time.Duration) string {
	return "You can only vote once every " + formatSpan(cooldown) + " per site"
}

func formatSpan(d time.Duration) string {
	switch {
	case d > 0 && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	case d > 0 && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}

// retryAfterSeconds arredonda para cima: Retry-After não pode liberar antes da hora.
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
