// Package typespec parses and prints textual type signatures.
//
// Grammar:
//
//	list   = [ type { "," type } ]
//	type   = scalar | struct
//	struct = "{" [ type { "," type } [ "," ] ] "}"
//	scalar = identifier naming a libffi primitive
//
// Scalar names follow the Rust-style short forms used by Format (u8, i32,
// f64, c64, pointer, ...) and accept common C and libffi spellings as
// aliases (uint8, sint32, float, double, ptr, size_t, ...).
//
//	t, err := typespec.Parse("{i64, {u8, u8}, pointer}")
//	if err != nil {
//		return err
//	}
//	defer t.Free()
//	fmt.Println(typespec.Format(t.Descriptor())) // {i64, {u8, u8}, pointer}
//
// Parse errors are *errors.Error values in the parse phase, carrying the
// byte offset and the element path to the failing type. On error every
// handle built so far has already been freed.
package typespec
