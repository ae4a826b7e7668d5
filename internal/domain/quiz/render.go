package quiz

import (
	"fmt"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

var numsEmoji = [...]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣"}

const answerHint = "Выберите вариант 1️⃣, 2️⃣ или 3️⃣, нажав на соответствующую кнопку ниже"

// OptionLabel возвращает подпись кнопки для варианта с порядковым номером n (с единицы).
func OptionLabel(n int) string {
	if n >= 0 && n < len(numsEmoji) {
		return numsEmoji[n]
	}
	return fmt.Sprint(n)
}

// RenderQuestion формирует HTML-текст вопроса с пронумерованными вариантами ответа.
func RenderQuestion(i int) string {
	if i < 0 || i >= Length {
		i = 0
	}
	q := questions[i]

	var b strings.Builder
	fmt.Fprintf(&b, "<i>Вопрос %d/%d</i>\n\n", i+1, Length)
	fmt.Fprintf(&b, "<b>%s</b>\n\n", html.EscapeString(q.Prompt))
	for n, o := range q.Options {
		fmt.Fprintf(&b, "%s %s\n", OptionLabel(n+1), html.EscapeString(o.Text))
	}
	fmt.Fprintf(&b, "\n<i>%s</i>", answerHint)
	return b.String()
}

// RenderResult формирует подпись к картинке с итогом опроса.
func RenderResult(r Result) string {
	p := psychotypes[r.Winner]

	lines := make([]string, 0, len(r.Scores))
	for _, s := range r.Scores {
		lines = append(lines, fmt.Sprintf("%s - %d%%", capitalize(psychotypes[s.Category].Label), s.Percent))
	}

	return fmt.Sprintf("Вы <b>%s</b>\n\n"+
		"Ваш сад – %s\n\n"+
		"Результаты:\n\n"+
		"%s\n\n"+
		"Пройти заново: /start\n\n"+
		"<tg-spoiler>А тут спряталась наша к Вам любовь ❤️🤗☺️</tg-spoiler>",
		strings.ToUpper(p.Label), p.Garden, strings.Join(lines, "\n"))
}

// RenderGarden формирует описание сада для сообщения после результата.
func RenderGarden(c Category) string {
	p := psychotypes[c]
	return fmt.Sprintf("Вам подойдёт <b>%s</b>%s", p.Garden, html.EscapeString(p.Description))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
