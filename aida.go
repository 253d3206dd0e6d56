// Package aida holds shared metadata for the AIDA plugin tooling.
package aida

// Version is the current generator version. The update engine stamps this
// onto every scaffold it touches; scans compare it against the version
// recorded on the target to decide whether an update is worth offering.
const Version = "0.4.0"
