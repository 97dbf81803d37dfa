package typing

import (
	"hash/fnv"

	"github.com/hashicorp/go-set/v3"
)

// typePair is a pair of types used to key visited sets of binary traversals.
type typePair struct {
	a, b Type
}

// comparer compares types structurally.  A pair of types which is already
// being compared is assumed equal: cyclic types are equal co-inductively.
// Results are memoized the same way as by the extender.
type comparer struct {
	active  *set.Set[typePair]
	proven  *set.Set[typePair]
	refuted *set.Set[typePair]

	// The pairs in proven in the order they were proven.
	provenLog []typePair
}

// Equals returns whether two types are structurally equal.
func Equals(a, b Type) bool {
	c := &comparer{
		active:  set.New[typePair](0),
		proven:  set.New[typePair](0),
		refuted: set.New[typePair](0),
	}

	return c.equal(a, b)
}

func (c *comparer) equal(a, b Type) bool {
	if a == b {
		return true
	}

	pair := typePair{a, b}
	if c.proven.Contains(pair) {
		return true
	} else if c.refuted.Contains(pair) {
		return false
	} else if !c.active.Insert(pair) {
		return true
	}

	mark := len(c.provenLog)
	result := a.equals(b, c)
	c.active.Remove(pair)

	if result {
		c.proven.Insert(pair)
		c.provenLog = append(c.provenLog, pair)
	} else {
		for _, p := range c.provenLog[mark:] {
			c.proven.Remove(p)
		}

		c.provenLog = c.provenLog[:mark]
		c.refuted.Insert(pair)
	}

	return result
}

// -----------------------------------------------------------------------------

// cycleHash is the hash of a type which is already being hashed.
const cycleHash uint64 = 0x9e3779b97f4a7c15

// hasher computes structural hashes of types.  Hashes are memoized per type
// reference.
type hasher struct {
	active *set.Set[Type]
	memo   map[Type]uint64
}

// Hash returns the structural hash of a type.  Equal types hash equally.
func Hash(t Type) uint64 {
	h := &hasher{active: set.New[Type](0), memo: make(map[Type]uint64)}
	return h.hash(t)
}

func (h *hasher) hash(t Type) uint64 {
	if sum, ok := h.memo[t]; ok {
		return sum
	} else if !h.active.Insert(t) {
		return cycleHash
	}

	sum := t.hash(h)
	h.active.Remove(t)
	h.memo[t] = sum
	return sum
}

// hashMembers hashes a union or intersection member list independently of
// member order.
func (h *hasher) hashMembers(seed uint64, members []Type) uint64 {
	sum := seed
	for _, member := range members {
		sum += mix(seed, h.hash(member))
	}

	return sum
}

// mix combines two hash values.
func mix(a, b uint64) uint64 {
	a ^= b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2)
	return a * 0xff51afd7ed558ccd
}

// hashString hashes a string with the given seed.
func hashString(seed uint64, s string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(s))
	return mix(seed, f.Sum64())
}
