package lint

import (
	"fmt"
	"strings"

	"github.com/Oudwins/zog"
	"github.com/gosimple/slug"

	"github.com/ogri-la/card-list-validator-go/src/catalog"
)

// Finding is a single lint warning about a decoded catalog
type Finding struct {
	Path    string
	Message string
}

func (f Finding) String() string {
	return f.Path + ": " + f.Message
}

// isNotBlank checks a string has something other than whitespace
func isNotBlank(val *string, ctx zog.Ctx) bool {
	return val != nil && strings.TrimSpace(*val) != ""
}

var textSchema = zog.String().Required().TestFunc(isNotBlank, zog.Message("must not be blank"))

func blank(s string) bool {
	return len(textSchema.Validate(&s)) > 0
}

// Check audits a catalog for problems the schema cannot express.
// Findings are warnings, returned in walk order with unused root attributes last.
func Check(list *catalog.CardList) []Finding {
	l := &linter{}
	l.text("name", list.Name, "catalog name")

	defined := l.rootAttributes(list)
	used := make(map[string]bool)

	for i, set := range list.Sets {
		prefix := fmt.Sprintf("sets[%d]", i)
		l.text(prefix+".name", set.Name, "set name")
		l.insertOdds(prefix, set.InsertOdds)
		l.variations(prefix, set.Variations)
		l.parallels(prefix, set.Parallels)

		seen := make(map[string]int)
		for j, card := range set.Cards {
			cardPrefix := fmt.Sprintf("%s.cards[%d]", prefix, j)
			l.text(cardPrefix+".name", card.Name, "card name")
			l.variations(cardPrefix, card.Variations)
			l.parallels(cardPrefix, card.Parallels)

			// duplicates share a number and a name modulo case, accents and punctuation
			key := catalog.Value(card.Number) + "|" + slug.Make(card.Name)
			if first, ok := seen[key]; ok {
				l.add(cardPrefix, fmt.Sprintf("duplicate of %s.cards[%d] (%q)", prefix, first, card.Name))
			} else {
				seen[key] = j
			}

			for k, attr := range catalog.Value(card.Attributes) {
				used[attr] = true
				if _, ok := defined[attr]; !ok {
					l.add(fmt.Sprintf("%s.attributes[%d]", cardPrefix, k),
						fmt.Sprintf("attribute %q is not defined in the root attributes", attr))
				}
			}
		}
	}

	for i, item := range catalog.Value(list.Attributes) {
		if !used[item.Attribute] && defined[item.Attribute] == i {
			l.add(fmt.Sprintf("attributes[%d]", i), fmt.Sprintf("attribute %q is not used by any card", item.Attribute))
		}
	}

	return l.findings
}

type linter struct {
	findings []Finding
}

func (l *linter) add(path, message string) {
	l.findings = append(l.findings, Finding{Path: path, Message: message})
}

func (l *linter) text(path, value, what string) {
	if blank(value) {
		l.add(path, what+" is blank")
	}
}

// rootAttributes indexes the root attribute definitions, attribute -> index of first definition
func (l *linter) rootAttributes(list *catalog.CardList) map[string]int {
	defined := make(map[string]int)
	for i, item := range catalog.Value(list.Attributes) {
		path := fmt.Sprintf("attributes[%d]", i)
		l.text(path+".attribute", item.Attribute, "attribute")

		first, ok := defined[item.Attribute]
		if !ok {
			defined[item.Attribute] = i
			continue
		}
		prev := (*list.Attributes)[first]
		if prev.Note != item.Note {
			l.add(path, fmt.Sprintf("attribute %q defined with conflicting notes: %q and %q", item.Attribute, prev.Note, item.Note))
		}
	}
	return defined
}

func (l *linter) insertOdds(prefix string, odds *[]catalog.InsertOdd) {
	for i, odd := range catalog.Value(odds) {
		path := fmt.Sprintf("%s.insertOdds[%d]", prefix, i)
		l.text(path+".product", odd.Product, "insert odds product")
		l.text(path+".odds", odd.Odds, "insert odds")
	}
}

func (l *linter) variations(prefix string, variations *[]catalog.Variation) {
	for i, v := range catalog.Value(variations) {
		path := fmt.Sprintf("%s.variations[%d]", prefix, i)
		l.text(path+".variation", v.Variation, "variation")
		l.insertOdds(path, v.InsertOdds)
		l.parallels(path, v.Parallels)
	}
}

func (l *linter) parallels(prefix string, parallels *[]catalog.Parallel) {
	for i, p := range catalog.Value(parallels) {
		path := fmt.Sprintf("%s.parallels[%d]", prefix, i)
		l.text(path+".name", p.Name, "parallel name")
		l.insertOdds(path, p.InsertOdds)
	}
}
