//go:build phasedebug

package phase

const defaultRangeCheck = RangeCheckStrict
