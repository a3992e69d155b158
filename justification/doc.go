// Package justification walks the justification cone of a block.
//
// It is deliberately not a general-purpose graph library: the only
// traversal it knows how to do is "hand each of a block's direct
// justifications to a visitor, in order, stop early if asked"; the
// visitor fetches a justification's block (through Fetch) only when it
// needs it. The neglect detector supplies the visitor that actually
// understands equivocation children; this package only owns the fold
// loop, the cache-aware Fetch helper, and the concurrent prefetch
// helper used to warm the first hop.
//
// Every fetch failure is fatal: the enclosing validation pipeline only
// ever calls this code on blocks whose justifications are already
// known to be resolvable, so a missing hash here means corrupt local
// storage, not a transient condition to retry.
package justification
