// Package quiz содержит сценарий опроса "Какой у вас сад" и правила подсчёта результата.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Category психотип, к которому относится вариант ответа.
type Category string

const (
	Kinesthetic Category = "kinesthetic"
	Visual      Category = "visual"
	Audial      Category = "audial"
)

// Categories перечисляет психотипы в порядке отображения результатов.
var Categories = []Category{Kinesthetic, Visual, Audial}

// ErrUnknownCategory возвращается для тега ответа, которого нет среди психотипов.
var ErrUnknownCategory = errors.New("unknown category")

// Picker выбирает случайный индекс в диапазоне [0, n).
type Picker func(n int) int

// DefaultPicker использует общий для процесса источник случайности.
var DefaultPicker Picker = rand.Intn

// ParseCategory проверяет тег, пришедший из callback-данных.
func ParseCategory(tag string) (Category, error) {
	for _, c := range Categories {
		if string(c) == tag {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
}

// NewScores возвращает счётчики со всеми психотипами, обнулёнными.
func NewScores() map[Category]int {
	scores := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	return scores
}

// Accumulate засчитывает один ответ в пользу психотипа.
func Accumulate(scores map[Category]int, tag Category) error {
	if _, ok := psychotypes[tag]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
	}
	scores[tag]++
	return nil
}

// Percent переводит количество ответов в проценты с округлением вниз.
func Percent(score int) int {
	return score * 100 / Length
}

// Score строка итоговой таблицы.
type Score struct {
	Category Category
	Value    int
	Percent  int
}

// Result итог прохождения опроса.
type Result struct {
	Winner Category
	Scores []Score
}

// Classify сортирует психотипы по убыванию баллов и определяет победителя.
// При равенстве максимальных баллов победитель выбирается случайно среди лидеров.
func Classify(scores map[Category]int, pick Picker) Result {
	if pick == nil {
		pick = DefaultPicker
	}

	ordered := make([]Score, 0, len(Categories))
	for _, c := range Categories {
		ordered = append(ordered, Score{Category: c, Value: scores[c], Percent: Percent(scores[c])})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value > ordered[j].Value
	})

	maxScore := ordered[0].Value
	var leaders []Category
	for _, s := range ordered {
		if s.Value == maxScore {
			leaders = append(leaders, s.Category)
		}
	}

	return Result{
		Winner: leaders[pick(len(leaders))],
		Scores: ordered,
	}
}
