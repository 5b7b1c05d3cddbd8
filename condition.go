package marionette

import "math"

// Compare selects the comparison applied by float and int conditions.
type Compare uint8

const (
	CompareGreater Compare = iota
	CompareLess
	CompareEqual
	CompareNotEqual
)

const floatEqualEpsilon = 1e-9

type condKind uint8

const (
	condBool condKind = iota
	condFloat
	condInt
	condTrigger
)

// Condition is a single predicate on the parameter bank. A transition fires
// only when all of its conditions hold. A condition that references a missing
// parameter (or one holding a different type) evaluates to false; it never
// fails the tick.
type Condition struct {
	kind  condKind
	param paramRef
	cmp   Compare
	b     bool
	f     float64
	i     int64
}

// BoolCondition holds when the named bool parameter equals expected.
func BoolCondition(name string, expected bool) Condition {
	return Condition{kind: condBool, param: newParamRef(name), b: expected}
}

// FloatCondition holds when the named float parameter compares true against
// threshold. Equality comparisons use a small epsilon.
func FloatCondition(name string, cmp Compare, threshold float64) Condition {
	return Condition{kind: condFloat, param: newParamRef(name), cmp: cmp, f: threshold}
}

// IntCondition holds when the named int parameter compares true against
// threshold.
func IntCondition(name string, cmp Compare, threshold int64) Condition {
	return Condition{kind: condInt, param: newParamRef(name), cmp: cmp, i: threshold}
}

// TriggerCondition holds while the named trigger is raised. Triggers stay
// readable by every layer within the tick; the controller lowers them at the
// end of Update.
func TriggerCondition(name string) Condition {
	return Condition{kind: condTrigger, param: newParamRef(name)}
}

// evaluate reports whether the condition currently holds.
func (c *Condition) evaluate(params *Parameters) bool {
	slot, ok := c.param.resolve(params)
	if !ok {
		return false
	}
	switch c.kind {
	case condBool:
		return slot.kind == paramBool && slot.b == c.b
	case condFloat:
		if slot.kind != paramFloat {
			return false
		}
		switch c.cmp {
		case CompareGreater:
			return slot.f > c.f
		case CompareLess:
			return slot.f < c.f
		case CompareEqual:
			return math.Abs(slot.f-c.f) < floatEqualEpsilon
		case CompareNotEqual:
			return math.Abs(slot.f-c.f) >= floatEqualEpsilon
		}
	case condInt:
		if slot.kind != paramInt {
			return false
		}
		switch c.cmp {
		case CompareGreater:
			return slot.i > c.i
		case CompareLess:
			return slot.i < c.i
		case CompareEqual:
			return slot.i == c.i
		case CompareNotEqual:
			return slot.i != c.i
		}
	case condTrigger:
		return slot.kind == paramTrigger && slot.b
	}
	return false
}
