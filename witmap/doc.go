// Package witmap describes WIT values to libffi.
//
// FromWIT builds a C descriptor tree whose natural layout matches the
// Canonical ABI memory layout of a WIT type, so a record stored in a
// component's linear memory can be read or passed through libffi as a plain
// C struct:
//
//	record point { x: s32, y: s32, tag: u8 }   ->  {i32, i32, u8}
//	list<u8>                                   ->  {u32, u32}  (ptr, len)
//	tuple<u64, string>                         ->  {u64, {u32, u32}}
//
// Types whose memory form is a tagged union (option, result, variant) have
// no libffi equivalent and are rejected with KindUnsupported. The error's
// Value is the union's Info, so callers can describe it by hand.
//
// # Layout
//
// Calculator computes the Canonical ABI size, alignment and field offsets of
// any WIT type, including the union kinds FromWIT rejects. Flags wider than
// 16 bits occupy u32 words. For every type
// FromWIT accepts, descriptor.LayoutOf of the result agrees with Calculate.
//
// # Errors
//
// Errors are *errors.Error in PhaseMap. Path names the offending field:
// record fields by name, tuple elements by index.
package witmap
