package main

//
// Value: the 8-bit signed integer all IB Core expressions produce.
// Arithmetic wraps modulo 256 and is reinterpreted as two's complement;
// division truncates toward zero.  Grounded on original_source/ib.c's use
// of `signed char` for every expression result.
//

type Value = int8

// truncate8 reduces a wider integer to the low 8 bits, reinterpreted as a
// signed two's-complement byte.  int8(int32) in Go already performs this
// truncation, but the named helper documents the deliberate behavior at
// every call site (e.g. literal 300 -> 44, 128 -> -128) called out in
// spec.md S4.1/S4.3.
func truncate8(v int64) Value {
	return Value(int8(v))
}

func addValues(lhs, rhs Value) Value {
	return truncate8(int64(lhs) + int64(rhs))
}

func subValues(lhs, rhs Value) Value {
	return truncate8(int64(lhs) - int64(rhs))
}

func mulValues(lhs, rhs Value) Value {
	return truncate8(int64(lhs) * int64(rhs))
}

// divValues truncates toward zero, per spec.md S4.1.  Go's native integer
// division already truncates toward zero, so no extra adjustment is
// needed; the zero check is the caller's (eval.go's) responsibility since
// it must raise DivisionByZero rather than panic.
func divValues(lhs, rhs Value) Value {
	return truncate8(int64(lhs) / int64(rhs))
}
