// Package equivocation implements the equivocation detection subsystem:
// classifying freshly admitted blocks against a validator's known chain,
// tracking outstanding equivocations, and detecting when a block's
// justification cone proves an equivocation its author neglected to
// report.
//
// Detector is the package's entry point. ClassifyLocal and the neglect
// scan never mutate the Store directly except through Detector's
// CheckNeglect, which is the only place witnesses grow.
package equivocation
