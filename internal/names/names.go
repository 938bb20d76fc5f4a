// Package names provides deterministic naming for the concrete, delta and
// new-tuple variants of a relation (§4.1). Concrete, Delta and New are pure
// functions of the qualified relation name: injective across variants,
// stable across runs. No other package reconstructs these strings.
package names

// Concrete returns the accumulated-tuples variant name for q. It is the
// identity — the relation's own qualified name.
func Concrete(q string) string {
	return q
}

// Delta returns the "last-iteration additions" variant name for q, used
// as the delta source in semi-naïve recursive evaluation.
func Delta(q string) string {
	return "Δ" + q
}

// New returns the "this-iteration additions" variant name for q.
func New(q string) string {
	return q + "'"
}
