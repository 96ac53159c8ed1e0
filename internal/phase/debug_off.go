//go:build !phasedebug

package phase

const defaultRangeCheck = RangeCheckWarn
