package unit

// closeZeroEps is the magnitude below which a quantity's base value is
// treated as zero. Shared by the IsCloseZero predicates.
const closeZeroEps = 1e-10
