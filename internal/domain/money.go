package domain

// Money is an amount in minor currency units (VND has no minor unit,
// so this is the face value). Integer arithmetic only, no float drift.
type Money = int64
