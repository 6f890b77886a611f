package ensemble

import (
	"math"
	"strconv"
	"strings"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

// renderText quotes a string for Ensemble source, escaping quotes,
// backslashes, and the common control characters.
func renderText(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// renderNumber converts the editor's raw numeric text to its canonical
// Ensemble form. Text without a decimal point or exponent is an integer and
// renders without one; anything else is a float and always keeps a decimal
// point or exponent, so "2.0" stays "2.0" rather than collapsing to "2".
func renderNumber(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return "", errors.New("empty number")
	}
	if !strings.ContainsAny(t, ".eE") {
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return "", errors.Wrapf(err, "number %q", raw)
		}
		return strconv.FormatInt(n, 10), nil
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return "", errors.Wrapf(err, "number %q", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.Newf("number %q is not finite", raw)
	}
	out := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out, nil
}

// renderNotes turns the editor's free-form note text into an Ensemble list.
// Notes may be separated by whitespace or commas; empty text is an empty list.
func renderNotes(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) == 0 {
		return "[]"
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = renderText(f)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// renderTyped renders a raw literal according to the slot's declared type.
// TypeAny infers the shape from the text itself: boolean tokens and numbers
// keep their form, everything else becomes a quoted string.
func renderTyped(typ patch.ValueType, raw string) (string, error) {
	switch typ {
	case patch.TypeNumber:
		return renderNumber(raw)
	case patch.TypeText:
		return renderText(raw), nil
	case patch.TypeBoolean:
		t := strings.TrimSpace(raw)
		if t != "true" && t != "false" {
			return "", errors.Newf("boolean %q", raw)
		}
		return t, nil
	case patch.TypeNotes:
		return renderNotes(raw), nil
	case patch.TypeIdentifier:
		t := strings.TrimSpace(raw)
		if t == "" {
			return "", errors.New("empty identifier")
		}
		return t, nil
	case patch.TypeAny:
		t := strings.TrimSpace(raw)
		if t == "true" || t == "false" {
			return t, nil
		}
		if n, err := renderNumber(t); err == nil {
			return n, nil
		}
		return renderText(raw), nil
	default:
		return "", errors.AssertionFailedf("literal of type %q", typ)
	}
}
