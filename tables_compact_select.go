//go:build ryu_optimize_size

package ryu

// Size-optimized builds drop the full tables and rebuild entries on demand.

func pow5InvFor(q uint32) [2]uint64 { return computeInvPow5(q) }

func pow5For(i uint32) [2]uint64 { return computePow5(i) }
