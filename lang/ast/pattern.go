package ast

// Pattern is the left-hand side of a binding. Implementations are
// [IdentPattern], [ListPattern] and [Discard].
type Pattern interface {
	patternNode()
}

// IdentPattern binds the matched value to Name.
type IdentPattern struct {
	Name Ident
}

// ListPattern destructures a list of exactly len(Items) elements.
type ListPattern struct {
	Items []Spanned[Pattern]
}

// Discard matches any value and binds nothing.
type Discard struct{}

func (IdentPattern) patternNode() {}
func (ListPattern) patternNode()  {}
func (Discard) patternNode()      {}

// Binders returns every identifier bound by p, in source order.
func Binders(p Spanned[Pattern]) []Spanned[Ident] {
	var out []Spanned[Ident]

	var visit func(Spanned[Pattern])

	visit = func(p Spanned[Pattern]) {
		switch v := p.Value.(type) {
		case IdentPattern:
			out = append(out, Sp(p.Span, v.Name))
		case ListPattern:
			for _, item := range v.Items {
				visit(item)
			}
		}
	}

	visit(p)

	return out
}

// DuplicateBinders returns each binder whose name was already bound earlier
// in names. The result is empty when all names are distinct.
func DuplicateBinders(names []Spanned[Ident]) []Spanned[Ident] {
	seen := make(map[Ident]struct{}, len(names))

	var dups []Spanned[Ident]

	for _, name := range names {
		if _, ok := seen[name.Value]; ok {
			dups = append(dups, name)

			continue
		}

		seen[name.Value] = struct{}{}
	}

	return dups
}
