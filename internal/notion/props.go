package notion

import (
	"strconv"
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// Text builds a single-fragment rich-text value.
func Text(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{
				Content: content,
			},
		},
	}
}

// TitleProp builds a title property value.
func TitleProp(content string) notionapi.TitleProperty {
	return notionapi.TitleProperty{Title: Text(content)}
}

// RichTextProp builds a rich-text property value.
func RichTextProp(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: Text(content)}
}

// SelectProp builds a select property value.
func SelectProp(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

// NumberProp builds a number property value.
func NumberProp(n float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: n}
}

// CheckboxProp builds a checkbox property value.
func CheckboxProp(v bool) notionapi.CheckboxProperty {
	return notionapi.CheckboxProperty{Checkbox: v}
}

// RelationProp builds a relation property pointing at the given page IDs.
func RelationProp(pageIDs ...string) notionapi.RelationProperty {
	rel := make([]notionapi.Relation, 0, len(pageIDs))
	for _, id := range pageIDs {
		rel = append(rel, notionapi.Relation{ID: notionapi.PageID(id)})
	}
	return notionapi.RelationProperty{Relation: rel}
}

// DateProp builds a date property value with only a start date.
func DateProp(t time.Time) notionapi.DateProperty {
	d := notionapi.Date(t)
	return notionapi.DateProperty{
		Date: &notionapi.DateObject{
			Start: &d,
		},
	}
}

// CoerceValue converts a loosely typed value from a request body into the
// matching Notion property value: numeric strings become numbers,
// "true"/"false" become checkboxes, other strings become rich text. Numbers
// and booleans map directly.
func CoerceValue(value interface{}) notionapi.Property {
	switch v := value.(type) {
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return NumberProp(n)
		}
		switch strings.ToLower(v) {
		case "true":
			return CheckboxProp(true)
		case "false":
			return CheckboxProp(false)
		}
		return RichTextProp(v)
	case float64:
		return NumberProp(v)
	case int:
		return NumberProp(float64(v))
	case int64:
		return NumberProp(float64(v))
	case bool:
		return CheckboxProp(v)
	default:
		return nil
	}
}

// RichTextValue extracts the first rich-text fragment of the named property.
// Returns false if the property is missing, of another type, or empty.
func RichTextValue(props notionapi.Properties, name string) (string, bool) {
	prop, ok := props[name]
	if !ok {
		return "", false
	}
	var fragments []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.RichTextProperty:
		fragments = p.RichText
	case notionapi.RichTextProperty:
		fragments = p.RichText
	default:
		return "", false
	}
	if len(fragments) == 0 {
		return "", false
	}
	if fragments[0].Text != nil && fragments[0].Text.Content != "" {
		return fragments[0].Text.Content, true
	}
	return fragments[0].PlainText, true
}

// TitleValue extracts the first title fragment of the named property.
func TitleValue(props notionapi.Properties, name string) (string, bool) {
	prop, ok := props[name]
	if !ok {
		return "", false
	}
	var fragments []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		fragments = p.Title
	case notionapi.TitleProperty:
		fragments = p.Title
	default:
		return "", false
	}
	if len(fragments) == 0 {
		return "", false
	}
	if fragments[0].Text != nil && fragments[0].Text.Content != "" {
		return fragments[0].Text.Content, true
	}
	return fragments[0].PlainText, true
}

// NumberValue extracts the named number property.
func NumberValue(props notionapi.Properties, name string) (float64, bool) {
	prop, ok := props[name]
	if !ok {
		return 0, false
	}
	switch p := prop.(type) {
	case *notionapi.NumberProperty:
		return p.Number, true
	case notionapi.NumberProperty:
		return p.Number, true
	}
	return 0, false
}

// CheckboxValue extracts the named checkbox property.
func CheckboxValue(props notionapi.Properties, name string) (bool, bool) {
	prop, ok := props[name]
	if !ok {
		return false, false
	}
	switch p := prop.(type) {
	case *notionapi.CheckboxProperty:
		return p.Checkbox, true
	case notionapi.CheckboxProperty:
		return p.Checkbox, true
	}
	return false, false
}

// RollupNumber extracts the numeric value of the named rollup property.
func RollupNumber(props notionapi.Properties, name string) (float64, bool) {
	prop, ok := props[name]
	if !ok {
		return 0, false
	}
	switch p := prop.(type) {
	case *notionapi.RollupProperty:
		return p.Rollup.Number, true
	case notionapi.RollupProperty:
		return p.Rollup.Number, true
	}
	return 0, false
}

// FormulaNumber extracts the numeric value of the named formula property.
func FormulaNumber(props notionapi.Properties, name string) (float64, bool) {
	prop, ok := props[name]
	if !ok {
		return 0, false
	}
	switch p := prop.(type) {
	case *notionapi.FormulaProperty:
		return p.Formula.Number, true
	case notionapi.FormulaProperty:
		return p.Formula.Number, true
	}
	return 0, false
}

// PropertyPayload reduces a page property to its type name and a plain value
// for the raw property endpoints. Unknown types return the property as-is.
func PropertyPayload(prop notionapi.Property) (string, interface{}) {
	switch p := prop.(type) {
	case *notionapi.NumberProperty:
		return "number", p.Number
	case notionapi.NumberProperty:
		return "number", p.Number
	case *notionapi.CheckboxProperty:
		return "checkbox", p.Checkbox
	case notionapi.CheckboxProperty:
		return "checkbox", p.Checkbox
	case *notionapi.RichTextProperty:
		return "rich_text", plainText(p.RichText)
	case notionapi.RichTextProperty:
		return "rich_text", plainText(p.RichText)
	case *notionapi.TitleProperty:
		return "title", plainText(p.Title)
	case notionapi.TitleProperty:
		return "title", plainText(p.Title)
	default:
		return "", prop
	}
}

func plainText(fragments []notionapi.RichText) string {
	var b strings.Builder
	for _, f := range fragments {
		if f.Text != nil && f.Text.Content != "" {
			b.WriteString(f.Text.Content)
			continue
		}
		b.WriteString(f.PlainText)
	}
	return b.String()
}
