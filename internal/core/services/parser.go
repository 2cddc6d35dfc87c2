package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Intent patterns. Longer triggers come first so their words are not left
// in the item text.
var (
	addPattern    = regexp.MustCompile(`\b(?:add to cart|add|put|i want|buy)\b\s*(\d+)?\s*(.+)`)
	deletePattern = regexp.MustCompile(`\b(?:remove from cart|delete|remove|discard)\b\s*(\d+)?\s*(.+)`)

	addFiller    = regexp.MustCompile(`to cart|in cart|please`)
	deleteFiller = regexp.MustCompile(`from cart|please`)

	numericToken = regexp.MustCompile(`^\d+$`)
)

// ParseIntent extracts {action, quantity, item} from English-ish text.
// It never fails: text matching no pattern yields an unknown intent with an
// empty item. Quantities below 1 are read as 1.
func ParseIntent(text string) domain.ParsedIntent {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return domain.UnknownIntent("")
	}

	if m := addPattern.FindStringSubmatch(s); m != nil {
		return domain.ParsedIntent{
			Action:   domain.ActionAdd,
			Quantity: parseQuantity(m[1]),
			Item:     cleanItem(m[2], addFiller),
		}
	}

	if m := deletePattern.FindStringSubmatch(s); m != nil {
		return domain.ParsedIntent{
			Action:   domain.ActionDelete,
			Quantity: parseQuantity(m[1]),
			Item:     cleanItem(m[2], deleteFiller),
		}
	}

	if strings.Contains(s, "add") {
		return salvageAdd(s)
	}

	return domain.UnknownIntent("")
}

// salvageAdd handles commands where "add" is not followed by the item,
// as in the verb-final "milk add".
func salvageAdd(s string) domain.ParsedIntent {
	words := strings.Fields(s)

	quantity := 1
	for _, w := range words {
		if numericToken.MatchString(w) {
			quantity = parseQuantity(w)
			break
		}
	}

	rest := make([]string, 0, len(words))
	for _, w := range words {
		if w == "add" || numericToken.MatchString(w) {
			continue
		}
		rest = append(rest, w)
	}

	item := strings.Join(rest, " ")
	if item == "" {
		item = s
	}

	return domain.ParsedIntent{
		Action:   domain.ActionAdd,
		Quantity: quantity,
		Item:     item,
	}
}

func parseQuantity(digits string) int {
	if digits == "" {
		return 1
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		logger.Debug("Quantity %q out of range, using 1", digits)
		return 1
	}
	return domain.ClampQuantity(n)
}

func cleanItem(item string, filler *regexp.Regexp) string {
	return collapseSpaces(filler.ReplaceAllString(item, " "))
}
