// Package calc builds CSS calc() size expressions.
package calc

import "strings"

// Expression is an ordered sum of size terms.
type Expression struct {
	terms []string
}

// New returns an expression over the given terms.
func New(terms ...string) *Expression {
	e := &Expression{}
	e.SetTerms(terms...)
	return e
}

// SetTerms replaces the terms of the expression. Blank terms are skipped.
func (e *Expression) SetTerms(terms ...string) {
	e.terms = e.terms[:0]
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			e.terms = append(e.terms, t)
		}
	}
}

// Add appends a term.
func (e *Expression) Add(term string) *Expression {
	if term = strings.TrimSpace(term); term != "" {
		e.terms = append(e.terms, term)
	}
	return e
}

// Terms returns a copy of the terms.
func (e *Expression) Terms() []string {
	out := make([]string, len(e.terms))
	copy(out, e.terms)
	return out
}

// String serializes the expression. A single term is returned bare and an
// empty expression serializes to "".
func (e *Expression) String() string {
	switch len(e.terms) {
	case 0:
		return ""
	case 1:
		return e.terms[0]
	}

	var b strings.Builder
	b.WriteString("calc(")
	for i, t := range e.terms {
		if i > 0 {
			// A leading minus sign turns the join into a subtraction
			if rest, ok := strings.CutPrefix(t, "-"); ok {
				b.WriteString(" - ")
				b.WriteString(unwrap(rest))
				continue
			}
			b.WriteString(" + ")
		}
		b.WriteString(unwrap(t))
	}
	b.WriteString(")")
	return b.String()
}

// unwrap strips a nested calc() so the result stays a single calc call.
func unwrap(term string) string {
	if inner, ok := strings.CutPrefix(term, "calc("); ok && strings.HasSuffix(inner, ")") {
		return "(" + strings.TrimSuffix(inner, ")") + ")"
	}
	return term
}
