package styles

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// AttributeChange is one placeholder whose rendered value changed.
type AttributeChange struct {
	Attribute string
	OldValue  string
	NewValue  string
}

// String formats the change as "attribute: old → new".
func (c AttributeChange) String() string {
	return fmt.Sprintf("%s: %s → %s", c.Attribute, c.OldValue, c.NewValue)
}

// UpdatedStyle lists the attribute changes between two versions of one style.
type UpdatedStyle struct {
	StyleName         string
	CodeName          string
	UpdatedAttributes []AttributeChange
}

// NewUpdatedStyle compares the rendered attributes of two versions of the
// same style. Attributes the new style ignores are skipped. It returns None
// when nothing differs.
func NewUpdatedStyle[S Style[S]](oldStyle, newStyle S) mo.Option[UpdatedStyle] {
	oldDict := oldStyle.ReplacementDictionary()
	newDict := newStyle.ReplacementDictionary()
	ignored := newStyle.IgnoredUpdateAttributes()

	keys := lo.Uniq(append(lo.Keys(oldDict), lo.Keys(newDict)...))
	sort.Strings(keys)

	var changes []AttributeChange
	for _, key := range keys {
		if lo.Contains(ignored, key) {
			continue
		}
		if oldDict[key] == newDict[key] {
			continue
		}
		changes = append(changes, AttributeChange{
			Attribute: key,
			OldValue:  oldDict[key],
			NewValue:  newDict[key],
		})
	}

	if len(changes) == 0 {
		return mo.None[UpdatedStyle]()
	}

	return mo.Some(UpdatedStyle{
		StyleName:         newStyle.StyleName(),
		CodeName:          ToCodeName(newStyle.StyleName()),
		UpdatedAttributes: changes,
	})
}

func (u UpdatedStyle) DeclarationName() string { return UpdatedStyleDeclaration }

func (u UpdatedStyle) ReplacementDictionary() map[string]string {
	descriptions := lo.Map(u.UpdatedAttributes, func(c AttributeChange, _ int) string {
		return c.String()
	})
	return map[string]string{
		"styleName":   u.StyleName,
		"name":        u.CodeName,
		"changes":     strings.Join(descriptions, "; "),
		"changeCount": strconv.Itoa(len(u.UpdatedAttributes)),
	}
}

func (u UpdatedStyle) IgnoredUpdateAttributes() []string { return nil }
